package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"example.com/exerciseresolver/internal/domain"
	"example.com/exerciseresolver/internal/events"
	"example.com/exerciseresolver/internal/pipeline"
	"example.com/exerciseresolver/internal/video"
)

// PlanHandler turns plan.generated events into resolution passes: every
// exercise name in the plan is resolved to a canonical catalog entry and
// entries without a video get one selected.
type PlanHandler struct {
	pipeline *pipeline.Pipeline
	logger   *log.Logger
}

// NewPlanHandler constructs a plan handler over the pipeline.
func NewPlanHandler(p *pipeline.Pipeline) *PlanHandler {
	return &PlanHandler{pipeline: p, logger: log.Default()}
}

// Handle runs a full pass for a plan.generated event. Quota exhaustion is
// terminal for the pass but not for the message: the partial results are
// kept and the message is not retried, since replaying it would burn the
// remaining quota on the same work.
func (h *PlanHandler) Handle(ctx context.Context, msg Message) error {
	if msg.Headers["event_type"] != "plan.generated" {
		return nil
	}

	var evt events.PlanGenerated
	payload := msg.Payload
	// Handle Confluent Schema Registry wire format (magic byte + 4-byte schema id)
	if len(payload) >= 5 && payload[0] == 0x00 {
		payload = payload[5:]
	}
	if err := json.Unmarshal(payload, &evt); err != nil {
		return err
	}

	mentions := make([]domain.Mention, 0, len(evt.Exercises))
	for _, planned := range evt.Exercises {
		if strings.TrimSpace(planned.Name) == "" {
			continue
		}
		mentions = append(mentions, domain.Mention{
			Name:       planned.Name,
			PlanID:     evt.PlanID,
			Slot:       planned.Slot,
			ExerciseID: planned.ExerciseID,
		})
	}
	if len(mentions) == 0 {
		return nil
	}

	report, err := h.pipeline.Run(ctx, mentions)
	if err != nil && !errors.Is(err, video.ErrQuotaExceeded) {
		return err
	}

	h.logger.Printf("plan %s pass %s: matched=%d created=%d redirected=%d failed=%d videos=%d missing=%d quota_exhausted=%t",
		evt.PlanID, report.PassID, report.Matched, report.Created, report.Redirected,
		report.Failed, report.VideosSelected, report.VideosMissing, report.QuotaExhausted)
	RecordProcessed(msg)
	return nil
}
