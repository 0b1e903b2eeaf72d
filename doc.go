// Package paramwire carries typed values between processes as opaque byte
// payloads. Every serializable type has a codec entry (a param.Traits
// implementation in package traits) that writes its wire representation into a
// wire.Writer and reads it back from a bounds-checked wire.Reader.
//
// Components:
//   - wire: the message buffer adapter (growable writer, cursor reader, decode errors).
//   - param: the traits contract plus primitive and container traits.
//   - resource / traits: the application types and their codec entries.
//   - codec: Codec[V] implementations, including the versioned Wire codec.
//   - Serializer[V]: a Codec[V] with size limits, logging and hooks.
//   - Registry: type id -> name/describer, for rendering payloads in diagnostics.
//
// Decoding fails in exactly two ways, wire.ErrTruncated (message incomplete) and
// wire.ErrMalformed (message corrupt); both survive the error wrapping done here.
//
//	s, _ := paramwire.NewTraits[resource.HostPortPair, traits.HostPortPair](paramwire.Options[resource.HostPortPair]{
//	    Name:   "host_port",
//	    Logger: zaplog.ZapLogger{L: zl},
//	})
//	b, _ := s.Marshal(resource.HostPortPair{Host: "example.com", Port: 443})
//	hp, err := s.Unmarshal(b)
package paramwire
