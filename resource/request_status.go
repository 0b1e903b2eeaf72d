package resource

import "strconv"

// Status is the outcome of a network request.
type Status int32

const (
	StatusSuccess Status = iota
	StatusIOPending
	StatusHandledExternally
	StatusCanceled
	StatusFailed
)

func (s Status) Valid() bool { return s >= StatusSuccess && s <= StatusFailed }

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusIOPending:
		return "io_pending"
	case StatusHandledExternally:
		return "handled_externally"
	case StatusCanceled:
		return "canceled"
	case StatusFailed:
		return "failed"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseStatus is the inverse of String for valid statuses.
func ParseStatus(s string) (Status, bool) {
	for st := StatusSuccess; st <= StatusFailed; st++ {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}

// RequestStatus pairs a Status with a network error detail. The detail is only
// meaningful for canceled and failed requests.
type RequestStatus struct {
	Status Status
	Error  int32
}

// NewRequestStatus drops the detail for statuses that do not carry one.
func NewRequestStatus(s Status, detail int32) RequestStatus {
	rs := RequestStatus{Status: s}
	if rs.HasDetail() {
		rs.Error = detail
	}
	return rs
}

// HasDetail reports whether the error detail is part of the value.
func (s RequestStatus) HasDetail() bool {
	return s.Status == StatusCanceled || s.Status == StatusFailed
}

func (s RequestStatus) IsSuccess() bool { return s.Status == StatusSuccess }

// Equal ignores the detail when the status does not carry one.
func (s RequestStatus) Equal(o RequestStatus) bool {
	if s.Status != o.Status {
		return false
	}
	return !s.HasDetail() || s.Error == o.Error
}

func (s RequestStatus) String() string {
	if s.HasDetail() {
		return s.Status.String() + ": " + strconv.Itoa(int(s.Error))
	}
	return s.Status.String()
}
