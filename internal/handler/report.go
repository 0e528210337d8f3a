package handler

import (
	"fmt"
	"net/http"

	"github.com/templui/goalflow/internal/ctxkeys"
	"github.com/templui/goalflow/internal/model"
	"github.com/templui/goalflow/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
	emailService  *service.EmailService
}

func NewReportHandler(reportService *service.ReportService, emailService *service.EmailService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		emailService:  emailService,
	}
}

func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	dr, err := service.ParseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		fail(w, err, "Failed to build report")
		return
	}

	summary, err := h.reportService.Summary(r.Context(), user.ID, dr)
	if err != nil {
		fail(w, err, "Failed to build report", "user_id", user.ID)
		return
	}

	writeOK(w, http.StatusOK, envelope{"data": summary})
}

// EmailSummary mails the summary for the requested range to the signed-in user.
func (h *ReportHandler) EmailSummary(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	dr, err := service.ParseRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		fail(w, err, "Failed to send report")
		return
	}

	summary, err := h.reportService.Summary(r.Context(), user.ID, dr)
	if err != nil {
		fail(w, err, "Failed to send report", "user_id", user.ID)
		return
	}

	err = h.emailService.SendSummaryEmail(r.Context(), user.Email, user.Name, describeRange(dr), summary)
	if err != nil {
		fail(w, err, "Failed to send report", "user_id", user.ID)
		return
	}

	writeOK(w, http.StatusOK, nil)
}

func describeRange(dr model.DateRange) string {
	const layout = "Jan 2, 2006"
	switch {
	case dr.From != nil && dr.To != nil:
		return fmt.Sprintf("%s to %s", dr.From.Format(layout), dr.To.Format(layout))
	case dr.From != nil:
		return "since " + dr.From.Format(layout)
	case dr.To != nil:
		return "until " + dr.To.Format(layout)
	}
	return "all time"
}
