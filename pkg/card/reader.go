package card

import (
	"errors"
	"log/slog"

	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/iso7816"
)

// CHUNKED BINARY READ:
// The currently selected transparent file is read with repeated READ BINARY
// commands at an advancing offset. Reassembly has to cope with three ways a
// card fragments its answers:
//
//  1. Short read: the card returns fewer bytes than requested with a plain
//     success status. Treated as end of file.
//  2. Continuation ('61 XX'): XX more bytes are pending and must be fetched
//     immediately with a GET RESPONSE sized to XX.
//  3. End of file ('6B 00'): the offset ran past the file. Not an error.
//
// The short-read heuristic has a known blind spot: a final chunk that is
// exactly the requested size defers EOF detection to the next, empty read.
// That behavior is deliberate and pinned by tests; do not "fix" it.

// Default read parameters.
const (
	// DefaultChunkSize is the per-READ BINARY request size. Some files on
	// this profile only tolerate 0xF8; the operation's config decides.
	DefaultChunkSize byte = 0xFF

	// DefaultMaxAttempts bounds the total number of read-loop iterations.
	DefaultMaxAttempts = 20
)

// Failure reasons reported in ReadResult.Reason.
const (
	ReasonNoData            = "no-data"
	ReasonNotFound          = "not-found"
	ReasonMaxAttempts       = "max-attempts-exceeded"
	ReasonGetResponseFailed = "get-response-failed"
	ReasonWrongLength       = "wrong-length-unresolved"
	ReasonTagLost           = "tag-lost"
)

// ReadConfig parameterizes one chunked read. Zero fields take defaults.
type ReadConfig struct {
	ChunkSize   byte
	MaxAttempts int
}

// ReadResult is the outcome of a chunked read. Data holds everything
// accumulated, including partial data from a failed read; the caller decides
// whether an incomplete read is fatal.
type ReadResult struct {
	Data     []byte
	Complete bool

	// Reason explains an incomplete read; empty when Complete.
	Reason string
}

// Size returns the number of bytes read.
func (r ReadResult) Size() int {
	return len(r.Data)
}

// Reader performs chunked binary reads over a client.
type Reader struct {
	Client *Client
	Config ReadConfig

	// Logger receives per-chunk debug events. Nil uses slog.Default.
	Logger *slog.Logger
}

// readSession is the accumulator owned by exactly one ReadAll call. It is
// created on entry and dies with the call; nothing shares it.
type readSession struct {
	offset   int
	data     []byte
	attempts int
}

// ReadAll reads the currently selected file from the starting offset until
// end of file, a failure, or the attempt bound. A tag-lost condition
// escalates as an error alongside the partial result.
func (r *Reader) ReadAll(start uint16) (ReadResult, error) {
	logger := r.logger()

	chunk := r.Config.ChunkSize
	if chunk == 0 {
		chunk = DefaultChunkSize
	}
	maxAttempts := r.Config.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	requested := int(chunk)

	s := &readSession{offset: int(start)}

	for {
		data, st, err := r.Client.Exchange(iso7816.BuildReadBinary(uint16(s.offset), chunk))
		if err != nil {
			if errors.Is(err, ErrTagLost) {
				return s.fail(ReasonTagLost), err
			}
			return s.fail(err.Error()), nil
		}

		logger.Debug("read chunk", "offset", s.offset, "bytes", len(data), "status", st.String())

		switch st.Outcome {
		case iso7816.Success, iso7816.Warning:
			if len(data) == 0 {
				if s.attempts == 0 {
					// Nothing on the very first read: the file has no data.
					return s.fail(ReasonNoData), nil
				}
				return s.done(), nil
			}

			s.append(data)
			if len(data) < requested {
				// Short read: end of file.
				return s.done(), nil
			}

		case iso7816.Continuation:
			s.append(data)

			if st.Param == 0 {
				return s.done(), nil
			}

			gdata, gst, err := r.Client.Exchange(iso7816.BuildGetResponse(byte(st.Param)))
			if err != nil {
				if errors.Is(err, ErrTagLost) {
					return s.fail(ReasonTagLost), err
				}
				return s.fail(ReasonGetResponseFailed), nil
			}
			if !gst.OK() || len(gdata) == 0 {
				return s.fail(ReasonGetResponseFailed), nil
			}

			s.append(gdata)

		case iso7816.EndOfFile:
			return s.done(), nil

		case iso7816.FileOrRecordNotFound:
			return s.fail(ReasonNotFound), nil

		case iso7816.WrongLength:
			// The client's correction retry already fired once; a wrong
			// length surviving to this loop cannot be resolved.
			return s.fail(ReasonWrongLength), nil

		default:
			return s.fail(st.String()), nil
		}

		s.attempts++
		if s.attempts >= maxAttempts {
			return s.fail(ReasonMaxAttempts), nil
		}
	}
}

func (r *Reader) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (s *readSession) append(data []byte) {
	s.data = append(s.data, data...)
	s.offset += len(data)
}

func (s *readSession) done() ReadResult {
	return ReadResult{Data: s.data, Complete: true}
}

func (s *readSession) fail(reason string) ReadResult {
	return ReadResult{Data: s.data, Reason: reason}
}
