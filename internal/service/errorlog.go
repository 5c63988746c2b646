package service

import (
	"encoding/json"
	"log"

	"agriko-backend/internal/model"
	"agriko-backend/internal/repository"
)

// recordError writes an error-log row for a failed workflow. Best effort:
// runs in its own goroutine and never blocks or fails the caller.
func recordError(auditRepo repository.AuditRepository, transaction, table string, payload interface{}, cause error) {
	go func() {
		var body string
		if payload != nil {
			if b, err := json.Marshal(payload); err == nil {
				body = string(b)
			}
		}
		entry := &model.ErrorLog{
			System:      "agriko",
			Transaction: transaction,
			TableName_:  table,
			Payload:     body,
			Message:     cause.Error(),
		}
		if err := auditRepo.CreateErrorLog(entry); err != nil {
			log.Printf("error log write failed (%s): %v", transaction, err)
		}
	}()
}
