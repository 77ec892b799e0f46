// Package dispatch matches grade rows to generated documents and mails each
// student their reflection summary with performance-conditioned cover text.
package dispatch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pavelanni/reflector/internal/mail"
	"github.com/pavelanni/reflector/internal/messages"
	"github.com/pavelanni/reflector/internal/model"
	"github.com/pavelanni/reflector/internal/report"
)

// Mean returns the arithmetic mean of the batch's scores, 0 for an empty
// batch. It is computed once per run and threaded into the selector.
func Mean(grades []model.GradeRow) float64 {
	if len(grades) == 0 {
		return 0
	}
	sum := 0.0
	for _, g := range grades {
		sum += g.Score
	}
	return sum / float64(len(grades))
}

// SelectVariant picks the cover text variant: strictly below the mean gets
// the encouragement variant, a tie at the mean gets the standard one.
func SelectVariant(score, mean float64) model.CoverVariant {
	if score < mean {
		return model.CoverEncouragement
	}
	return model.CoverStandard
}

// Dispatcher composes and hands off one message per grade row.
type Dispatcher struct {
	Course    string
	Dir       string
	From      string
	CC        string
	Signature string
	Catalog   *messages.Catalog
	Transport mail.Transport
}

// Run dispatches every grade row against the precomputed cohort mean and
// returns the per-recipient records. A missing document or a transport
// failure is recorded and reported; neither stops the batch.
func (d *Dispatcher) Run(ctx context.Context, grades []model.GradeRow, mean float64) []model.DispatchRecord {
	lastNames := make([]string, len(grades))
	for i, g := range grades {
		lastNames[i] = g.LastName
	}
	dup := model.DuplicatedLastNames(lastNames)

	records := make([]model.DispatchRecord, 0, len(grades))
	for _, g := range grades {
		variant := SelectVariant(g.Score, mean)
		base := model.DocumentBase(g.FirstName, g.LastName, dup[strings.ToLower(g.LastName)])
		attachment := filepath.Join(d.Dir, base+report.DocumentExt)

		rec := model.DispatchRecord{
			FirstName:  g.FirstName,
			LastName:   g.LastName,
			Email:      g.Email,
			Score:      g.Score,
			Variant:    variant,
			Attachment: attachment,
		}

		if _, err := os.Stat(attachment); err != nil {
			rec.Outcome = model.OutcomeAttachmentMissing
			rec.Detail = "did not turn in a reflection"
			slog.Warn("no reflection document, skipping recipient",
				"email", g.Email, "attachment", attachment)
			records = append(records, rec)
			continue
		}

		cover := ""
		if variant == model.CoverEncouragement {
			cover = d.Catalog.Encouragement()
		}
		msg := mail.Message{
			From:           d.From,
			To:             g.Email,
			CC:             d.CC,
			Subject:        d.Catalog.Subject(d.Course),
			Body:           d.Catalog.Body(g.FirstName, cover, d.Signature),
			AttachmentPath: attachment,
		}

		if err := d.Transport.Send(ctx, msg); err != nil {
			rec.Outcome = model.OutcomeTransportFailed
			rec.Detail = err.Error()
			slog.Warn("failed to send mail", "email", g.Email, "error", err)
		} else {
			rec.Outcome = model.OutcomeSent
			slog.Info("sent reflection mail", "email", g.Email)
		}
		records = append(records, rec)
	}
	return records
}
