package worker

// aviso_worker.go
// Processes sanitary alert jobs from QueueAviso: a severe or critical
// diarrhea episode triggers an email to the establecimiento's contact
// address. Best effort — the episode itself was already persisted.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/manucavallera/Ganaderia-sub001/internal/infra"

	"github.com/rs/zerolog/log"
)

// AvisoPayload is the job envelope sent to QueueAviso.
type AvisoPayload struct {
	ToEmail   string `json:"to_email"`
	Caravana  string `json:"caravana"`
	Severidad string `json:"severidad"`
	Numero    int    `json:"numero_episodio"`
	Fecha     string `json:"fecha"`
}

// AvisoWorker sends sanitary alert emails via SMTP.
type AvisoWorker struct {
	mailer *infra.Mailer
}

func NewAvisoWorker(mailer *infra.Mailer) *AvisoWorker {
	return &AvisoWorker{mailer: mailer}
}

// Process sends the alert email. A non-nil return lands the job in the DLQ.
func (w *AvisoWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload AvisoPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("aviso_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("aviso_worker: empty to_email — skipping")
		return nil
	}

	subject := fmt.Sprintf("Alerta sanitaria: episodio %s en ternero %s", payload.Severidad, payload.Caravana)
	body := fmt.Sprintf(
		"El ternero caravana %s registro su episodio de diarrea N° %d con severidad %s el %s.\n"+
			"Se recomienda revision veterinaria.",
		payload.Caravana, payload.Numero, payload.Severidad, payload.Fecha)

	if err := w.mailer.EnviarAviso(payload.ToEmail, subject, body); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("aviso_worker: failed to send email")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("aviso_worker: alerta enviada")
	return nil
}
