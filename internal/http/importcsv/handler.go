package importcsv

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/http/respond"
	"github.com/MrJamesThe3rd/pocket/internal/importer"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
	maxUpload int64
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service, maxUpload int64) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
		maxUpload: maxUpload,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type transactionResponse struct {
	ID         uuid.UUID     `json:"id"`
	Amount     int64         `json:"amount"`
	Name       string        `json:"name"`
	Note       string        `json:"note,omitempty"`
	CategoryID uuid.UUID     `json:"category_id"`
	Type       category.Type `json:"type"`
	Date       time.Time     `json:"date"`
	CreatedAt  time.Time     `json:"created_at"`
}

type importSuccessResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

type createParamsDTO struct {
	Amount     int64         `json:"amount"`
	Name       string        `json:"name"`
	Note       string        `json:"note,omitempty"`
	CategoryID uuid.UUID     `json:"category_id"`
	Type       category.Type `json:"type"`
	Date       time.Time     `json:"date"`
}

type conflictDTO struct {
	Incoming createParamsDTO     `json:"incoming"`
	Existing transactionResponse `json:"existing"`
}

type importConflictResponse struct {
	New       []createParamsDTO `json:"new"`
	Conflicts []conflictDTO     `json:"conflicts"`
}

type confirmRequest struct {
	Params []createParamsDTO `json:"params"`
}

// importCSV parses the uploaded "file" and stores its rows. When some rows
// duplicate stored transactions nothing is written and the split between new
// rows and conflicts is returned with 409 for the client to confirm.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
			return
		}

		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)

		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(r.Context(), file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	result, err := h.txSvc.ImportBatch(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]createParamsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}
		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toTxResponse(c.Existing),
			})
		}

		respond.JSON(w, http.StatusConflict, resp)

		return
	}

	respond.JSON(w, http.StatusCreated, toSuccessResponse(result.Imported))
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]transaction.CreateParams, 0, len(req.Params))
	for _, p := range req.Params {
		params = append(params, transaction.CreateParams{
			Amount:     p.Amount,
			Name:       p.Name,
			Note:       p.Note,
			CategoryID: p.CategoryID,
			Type:       p.Type,
			Date:       p.Date,
		})
	}

	txs, err := h.txSvc.CreateBatch(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toSuccessResponse(txs))
}

func toSuccessResponse(txs []*transaction.Transaction) importSuccessResponse {
	responses := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, toTxResponse(tx))
	}

	return importSuccessResponse{
		Imported:     len(txs),
		Transactions: responses,
	}
}

func toTxResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:         tx.ID,
		Amount:     tx.Amount,
		Name:       tx.Name,
		Note:       tx.Note,
		CategoryID: tx.CategoryID,
		Type:       tx.Type,
		Date:       tx.Date,
		CreatedAt:  tx.CreatedAt,
	}
}

func toParamsDTO(p transaction.CreateParams) createParamsDTO {
	return createParamsDTO{
		Amount:     p.Amount,
		Name:       p.Name,
		Note:       p.Note,
		CategoryID: p.CategoryID,
		Type:       p.Type,
		Date:       p.Date,
	}
}
