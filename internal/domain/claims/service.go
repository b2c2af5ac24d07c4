package claims

import (
	"context"
	"encoding/json"
	"os"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Input is the shared invocation contract for the parse, risk, and planning
// entry points: exactly one of raw transaction text, a path to a file
// containing it, or an already-normalized claim document.
type Input struct {
	Text     string                 `json:"text,omitempty"`
	FilePath string                 `json:"file_path,omitempty"`
	Claim    map[string]interface{} `json:"claim,omitempty"`
}

// populated counts how many input channels are meaningfully set.
func (in Input) populated() int {
	n := 0
	if in.Text != "" {
		n++
	}
	if in.FilePath != "" {
		n++
	}
	if len(in.Claim) > 0 {
		n++
	}
	return n
}

// Metrics receives per-operation counts and parse-size observations. It is
// satisfied by the telemetry provider; a nil Metrics disables recording.
type Metrics interface {
	OperationCounter(kind, operation string)
	ObserveSegments(n int)
}

// Service runs the parse pipeline and records an audit-trail entry per
// successful parse. Every invocation builds its structures fresh; no state is
// shared between calls.
type Service struct {
	audit   AuditRepository
	logger  zerolog.Logger
	metrics Metrics
}

func NewService(audit AuditRepository, logger zerolog.Logger) *Service {
	return &Service{audit: audit, logger: logger}
}

// WithMetrics attaches a metrics sink and returns the service.
func (s *Service) WithMetrics(m Metrics) *Service {
	s.metrics = m
	return s
}

// validate enforces the exactly-one-input contract.
func validate(in Input) error {
	switch in.populated() {
	case 0:
		return BadRequest("no input provided: supply text, file_path, or claim")
	case 1:
		return nil
	default:
		return BadRequest("ambiguous input: supply exactly one of text, file_path, or claim")
	}
}

// resolveText returns the transaction text for the text or file_path channel.
func resolveText(in Input) (string, error) {
	if in.Text != "" {
		return in.Text, nil
	}
	data, err := os.ReadFile(in.FilePath)
	if err != nil {
		return "", ParseError("cannot read transaction file %q: %v", in.FilePath, err)
	}
	if !utf8.Valid(data) {
		return "", ParseError("file %q does not contain text", in.FilePath)
	}
	return string(data), nil
}

// Parse runs the full pipeline for one invocation. Text and file inputs are
// tokenized and parsed by transaction kind; a claim document is normalized
// and echoed back in canonical form.
func (s *Service) Parse(ctx context.Context, in Input) (*ParseResult, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	if len(in.Claim) > 0 {
		s.countOperation(KindNormalized, "parse", 0)
		return &ParseResult{Kind: KindNormalized, Normalized: NormalizeClaim(in.Claim)}, nil
	}

	text, err := resolveText(in)
	if err != nil {
		return nil, err
	}

	result := ParseText(text)
	s.countOperation(result.Kind, "parse", result.SegmentCount())
	s.recordAudit(ctx, result)
	return result, nil
}

// ResolveClaim produces the normalized claim the analysis engines evaluate.
// Transaction text is always extracted 837-shaped: a document of the wrong
// kind yields a claim full of missing fields, which is the subject of
// analysis rather than an error.
func (s *Service) ResolveClaim(ctx context.Context, in Input) (*Claim, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	if len(in.Claim) > 0 {
		return NormalizeClaim(in.Claim), nil
	}

	text, err := resolveText(in)
	if err != nil {
		return nil, err
	}

	result := ParseText(text)
	s.recordAudit(ctx, result)
	if result.Claim != nil {
		return result.Claim.ToClaim(), nil
	}
	return ParseClaimText(text).ToClaim(), nil
}

// GetRecord returns one audit record.
func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*ParseRecord, error) {
	return s.audit.GetByID(ctx, id)
}

// ListRecords returns audit records newest-first.
func (s *Service) ListRecords(ctx context.Context, limit, offset int) ([]*ParseRecord, int, error) {
	return s.audit.List(ctx, limit, offset)
}

// countOperation records one operation against the metrics sink.
func (s *Service) countOperation(kind, operation string, segments int) {
	if s.metrics == nil {
		return
	}
	s.metrics.OperationCounter(kind, operation)
	if segments > 0 {
		s.metrics.ObserveSegments(segments)
	}
}

// recordAudit persists the parse trail best-effort; a storage failure is
// logged and never surfaces to the caller.
func (s *Service) recordAudit(ctx context.Context, result *ParseResult) {
	if s.audit == nil {
		return
	}

	rec := &ParseRecord{Kind: result.Kind}
	switch result.Kind {
	case KindClaim:
		rec.TransactionID = result.Claim.TransactionID
		rec.ClaimNumber = result.Claim.ClaimNumber
		rec.SegmentCount = result.Claim.RawSegmentCount
	case KindRemittance:
		rec.TransactionID = result.Remittance.TransactionID
		rec.SegmentCount = result.Remittance.RawSegmentCount
	}

	payload, err := json.Marshal(result)
	if err == nil {
		rec.Payload = payload
	}

	if err := s.audit.Create(ctx, rec); err != nil {
		s.logger.Warn().Err(err).Str("kind", rec.Kind).Msg("failed to record parse audit entry")
	}
}
