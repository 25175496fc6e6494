package card

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ebfe/scard"

	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/iso7816"
)

// PCSC is the real Transport, backed by a PC/SC smart card reader via scard.
// The zero value connects to the first reader found.
type PCSC struct {
	// Reader selects a reader by name; empty picks the first one listed.
	Reader string

	// Logger receives session lifecycle events. Nil uses slog.Default.
	Logger *slog.Logger
}

// Begin establishes a PC/SC context and connects to the card in the reader.
func (t *PCSC) Begin() (Session, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("card: establish context: %w", err)
	}

	reader := t.Reader
	if reader == "" {
		readers, err := ctx.ListReaders()
		if err != nil || len(readers) == 0 {
			releaseContext(ctx, t.logger())
			if err == nil {
				err = errors.New("no reader available")
			}
			return nil, fmt.Errorf("card: list readers: %w", err)
		}
		reader = readers[0]
	}

	// Force T=0 or T=1: ProtocolAny trips some drivers into parameter errors.
	c, err := ctx.Connect(reader, scard.ShareShared, scard.ProtocolT0|scard.ProtocolT1)
	if err != nil {
		releaseContext(ctx, t.logger())
		if isTagLost(err) {
			return nil, fmt.Errorf("%w: %v", ErrTagLost, err)
		}
		return nil, fmt.Errorf("card: connect to %q: %w", reader, err)
	}

	t.logger().Debug("session opened", "reader", reader)
	return &pcscSession{ctx: ctx, card: c, logger: t.logger()}, nil
}

func (t *PCSC) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

type pcscSession struct {
	ctx    *scard.Context
	card   *scard.Card
	logger *slog.Logger
}

func (s *pcscSession) Exchange(cmd iso7816.Frame) (iso7816.Frame, error) {
	raw, err := cmd.Bytes()
	if err != nil {
		return "", err
	}

	resp, err := s.card.Transmit(raw)
	if err != nil {
		if isTagLost(err) {
			return "", fmt.Errorf("%w: %v", ErrTagLost, err)
		}
		return "", fmt.Errorf("card: transmit: %w", err)
	}

	return iso7816.FrameFromBytes(resp), nil
}

func (s *pcscSession) Close(message string) {
	s.logger.Debug("session closed", "message", message)

	if err := s.card.Disconnect(scard.LeaveCard); err != nil {
		s.logger.Warn("disconnect failed", "error", err)
	}
	releaseContext(s.ctx, s.logger)
}

func releaseContext(ctx *scard.Context, logger *slog.Logger) {
	if err := ctx.Release(); err != nil {
		logger.Warn("context release failed", "error", err)
	}
}

// isTagLost recognizes the PC/SC conditions raised when the card leaves the
// field or is reset under us.
func isTagLost(err error) bool {
	return errors.Is(err, scard.ErrRemovedCard) ||
		errors.Is(err, scard.ErrResetCard) ||
		errors.Is(err, scard.ErrNoSmartcard)
}
