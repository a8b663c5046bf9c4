package http

import (
	"embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sepatools/epc-qr-hub/internal/domain/payment"
	"github.com/sepatools/epc-qr-hub/internal/domain/qrcode"
	"github.com/sepatools/epc-qr-hub/internal/i18n"
	"github.com/sepatools/epc-qr-hub/internal/usecase/generate"
)

//go:embed templates/index.html.tmpl
var templatesFS embed.FS

type Handler struct {
	uc     *generate.UseCase
	bundle *i18n.Bundle
	logger *slog.Logger
	tmpl   *template.Template
}

func NewHandler(uc *generate.UseCase, bundle *i18n.Bundle, logger *slog.Logger) *Handler {
	return &Handler{
		uc:     uc,
		bundle: bundle,
		logger: logger,
		tmpl:   template.Must(template.ParseFS(templatesFS, "templates/index.html.tmpl")),
	}
}

type formValues struct {
	BIC        string
	Name       string
	IBAN       string
	Amount     string
	Purpose    string
	Remittance string
	Reference  string
}

type purposeOption struct {
	Code     string
	Label    string
	Selected bool
}

type langOption struct {
	Code   string
	Label  string
	URL    string
	Active bool
}

type codeView struct {
	ID          string
	ImageURL    string
	DownloadURL string
	PayloadURL  string
	Payload     string
}

type pageData struct {
	Lang      string
	L         map[string]string
	Languages []langOption
	Purposes  []purposeOption
	Form      formValues
	Error     string
	Code      *codeView
	ShareURL  string
}

// HandleIndex serves the localized form page. Form values round-trip through
// query parameters so links are shareable; an id parameter additionally
// shows a previously generated code.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	lang, persist := h.bundle.Resolve(r)
	if persist {
		i18n.SetLangCookie(w, lang)
	}

	form := formFromValues(r.URL.Query())
	data := h.pageData(lang, form)

	if idStr := r.URL.Query().Get("id"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			if code, ok := h.uc.Lookup(id); ok {
				data.Code = h.codeView(code)
				data.ShareURL = "/?" + shareQuery(form, lang, idStr).Encode()
			}
		}
	}

	h.render(w, http.StatusOK, data)
}

// HandleGenerate handles the form submit. Success redirects to a shareable
// result URL; validation failures re-render the form with the submitted
// values kept and a localized error.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, `{"error":"invalid form"}`, http.StatusBadRequest)
		return
	}

	// The form carries its page language in a hidden field; fall back to
	// regular resolution when it is absent or unknown.
	lang := r.PostForm.Get(i18n.LangParam)
	if !h.bundle.Has(lang) {
		lang, _ = h.bundle.Resolve(r)
	}

	form := formFromValues(r.PostForm)
	code, err := h.uc.Execute(generate.Request{
		BIC:             form.BIC,
		Name:            form.Name,
		IBAN:            form.IBAN,
		Amount:          form.Amount,
		Purpose:         form.Purpose,
		RemittanceInfo:  form.Remittance,
		DebtorReference: form.Reference,
	})
	if err != nil {
		data := h.pageData(lang, form)
		data.Error = h.localizeError(lang, err)
		status := http.StatusOK
		if !errors.Is(err, payment.ErrValidation) {
			h.logger.Error("qr generation failed", "error", err)
			status = http.StatusInternalServerError
		}
		h.render(w, status, data)
		return
	}

	target := "/?" + shareQuery(form, lang, code.ID.String()).Encode()
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// HandleImage serves the PNG of a generated code.
func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	code, ok := h.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(code.PNG)
}

// HandleDownload serves the same PNG as an attachment, named the way the
// original download did: epc_qr_<timestamp>.png.
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	code, ok := h.lookup(w, r)
	if !ok {
		return
	}
	filename := "epc_qr_" + code.CreatedAt.Format("20060102_150405") + ".png"
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(code.PNG)
}

// HandlePayload serves the raw eleven-line payload as text.
func (h *Handler) HandlePayload(w http.ResponseWriter, r *http.Request) {
	code, ok := h.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(code.Payload))
}

type apiResponse struct {
	ID        string `json:"id"`
	Payload   string `json:"payload"`
	PNGBase64 string `json:"png_base64"`
}

// HandleAPIQR is the JSON variant of the generator: payment fields in query
// parameters, payload plus base64 PNG out.
func (h *Handler) HandleAPIQR(w http.ResponseWriter, r *http.Request) {
	form := formFromValues(r.URL.Query())
	code, err := h.uc.Execute(generate.Request{
		BIC:             form.BIC,
		Name:            form.Name,
		IBAN:            form.IBAN,
		Amount:          form.Amount,
		Purpose:         form.Purpose,
		RemittanceInfo:  form.Remittance,
		DebtorReference: form.Reference,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, payment.ErrValidation) {
			status = http.StatusBadRequest
		} else {
			h.logger.Error("qr generation failed", "error", err)
		}
		writeJSONError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(apiResponse{
		ID:        code.ID.String(),
		Payload:   code.Payload,
		PNGBase64: base64.StdEncoding.EncodeToString(code.PNG),
	})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (qrcode.Code, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid id")
		return qrcode.Code{}, false
	}
	code, ok := h.uc.Lookup(id)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "not found")
		return qrcode.Code{}, false
	}
	return code, true
}

func (h *Handler) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.Execute(w, data); err != nil {
		h.logger.Error("template render failed", "error", err)
	}
}

func (h *Handler) pageData(lang string, form formValues) pageData {
	return pageData{
		Lang:      lang,
		L:         h.labels(lang),
		Languages: h.languages(lang, form),
		Purposes:  h.purposes(lang, form.Purpose),
		Form:      form,
		ShareURL:  "/?" + shareQuery(form, lang, "").Encode(),
	}
}

func (h *Handler) languages(active string, form formValues) []langOption {
	supported := h.bundle.Supported()
	options := make([]langOption, 0, len(supported))
	for _, lang := range supported {
		options = append(options, langOption{
			Code:   lang,
			Label:  i18n.DisplayName(lang),
			URL:    "/?" + shareQuery(form, lang, "").Encode(),
			Active: lang == active,
		})
	}
	return options
}

func (h *Handler) purposes(lang, selected string) []purposeOption {
	options := make([]purposeOption, 0, len(payment.PurposeCodes)+1)
	options = append(options, purposeOption{
		Code:     "",
		Label:    h.bundle.T(lang, "purpose_not_specified", nil),
		Selected: selected == "",
	})
	for _, code := range payment.PurposeCodes {
		options = append(options, purposeOption{
			Code:     code,
			Label:    code + " - " + h.bundle.PurposeLabel(lang, code),
			Selected: code == selected,
		})
	}
	return options
}

// labelKeys enumerates every flat translation key the page template uses.
var labelKeys = []string{
	"title", "subtitle",
	"payment_information", "beneficiary_details", "payment_details",
	"remittance_information",
	"beneficiary_name", "beneficiary_name_placeholder", "beneficiary_name_help",
	"beneficiary_iban", "beneficiary_iban_placeholder", "beneficiary_iban_help",
	"bic", "bic_placeholder", "bic_help",
	"amount", "amount_help",
	"purpose_code", "purpose_code_help",
	"remittance_info", "remittance_info_placeholder", "remittance_info_help",
	"debtor_reference", "debtor_reference_placeholder", "debtor_reference_help",
	"generate_button", "generated_qr", "download_qr", "share_link",
	"raw_epc_data", "fill_info_hint", "language",
}

func (h *Handler) labels(lang string) map[string]string {
	labels := make(map[string]string, len(labelKeys))
	for _, key := range labelKeys {
		labels[key] = h.bundle.T(lang, key, nil)
	}
	return labels
}

// errorKeys maps validation sentinels to their translation keys.
var errorKeys = []struct {
	err error
	key string
}{
	{payment.ErrNameRequired, "errors.name_required"},
	{payment.ErrNameTooLong, "errors.name_too_long"},
	{payment.ErrIBANRequired, "errors.iban_required"},
	{payment.ErrIBANInvalid, "errors.iban_invalid"},
	{payment.ErrBICInvalid, "errors.bic_invalid"},
	{payment.ErrAmountNegative, "errors.amount_negative"},
	{payment.ErrAmountTooLarge, "errors.amount_too_large"},
	{payment.ErrAmountPrecision, "errors.amount_precision"},
	{payment.ErrPurposeUnknown, "errors.purpose_unknown"},
	{payment.ErrRemittanceTooLong, "errors.remittance_too_long"},
	{payment.ErrReferenceTooLong, "errors.reference_too_long"},
}

func (h *Handler) localizeError(lang string, err error) string {
	for _, entry := range errorKeys {
		if errors.Is(err, entry.err) {
			return h.bundle.T(lang, entry.key, nil)
		}
	}
	if errors.Is(err, payment.ErrValidation) {
		return h.bundle.T(lang, "errors.invalid_input", nil)
	}
	return h.bundle.T(lang, "errors.generation_failed", nil)
}

func (h *Handler) codeView(code qrcode.Code) *codeView {
	id := code.ID.String()
	return &codeView{
		ID:          id,
		ImageURL:    fmt.Sprintf("/qr/%s.png", id),
		DownloadURL: fmt.Sprintf("/qr/%s/download", id),
		PayloadURL:  fmt.Sprintf("/qr/%s/payload", id),
		Payload:     code.Payload,
	}
}

func formFromValues(values url.Values) formValues {
	return formValues{
		BIC:        values.Get("bic"),
		Name:       values.Get("name"),
		IBAN:       values.Get("iban"),
		Amount:     values.Get("amount"),
		Purpose:    values.Get("purpose"),
		Remittance: values.Get("remittance"),
		Reference:  values.Get("reference"),
	}
}

// shareQuery serializes the form (plus language and, when set, a code id)
// into query parameters, producing the shareable link for the current state.
func shareQuery(form formValues, lang, id string) url.Values {
	values := url.Values{}
	set := func(key, v string) {
		if v != "" {
			values.Set(key, v)
		}
	}
	set("bic", form.BIC)
	set("name", form.Name)
	set("iban", form.IBAN)
	set("amount", form.Amount)
	set("purpose", form.Purpose)
	set("remittance", form.Remittance)
	set("reference", form.Reference)
	set("lang", lang)
	set("id", id)
	return values
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
