package httpadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/manufosela/game-board/internal/ctxlog"
	"github.com/manufosela/game-board/internal/domain"
	"github.com/manufosela/game-board/internal/markup"
	"github.com/manufosela/game-board/internal/raster"
	"github.com/manufosela/game-board/internal/usecase"
)

// maxBody caps posted markup and JSON.
const maxBody = 1 << 20

type Handler struct {
	UC *usecase.Service
	// Sanitizer, when set, cleans posted markup before it is parsed.
	Sanitizer *bluemonday.Policy
	// Pages must define "board.tmpl" for GET /boards/{id}.
	Pages *template.Template
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/place", h.handlePlace)
	mux.HandleFunc("/api/render", h.handleRender)
	mux.HandleFunc("/api/preview", h.handlePreview)
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/boards", h.handleBoards)
	mux.HandleFunc("/api/board", h.handleBoard)
	mux.HandleFunc("/boards/", h.handleBoardPage)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(v)
}

type errorResp struct {
	Error string `json:"error"`
}

// ---- Place ----

type placeReq struct {
	Columns  json.RawMessage          `json:"columns,omitempty"`
	Rows     json.RawMessage          `json:"rows,omitempty"`
	Children []domain.ChildDescriptor `json:"children"`
}

type resultResp struct {
	Descriptor domain.ChildDescriptor `json:"descriptor"`
	Reason     domain.Reason          `json:"reason"`
	Placement  *domain.Placement      `json:"placement,omitempty"`
	Hint       *domain.Hint           `json:"hint,omitempty"`
}

type layoutResp struct {
	ID      string       `json:"id,omitempty"`
	Name    string       `json:"name,omitempty"`
	Columns int          `json:"columns"`
	Rows    int          `json:"rows"`
	Width   string       `json:"width,omitempty"`
	Height  string       `json:"height,omitempty"`
	Results []resultResp `json:"results"`
}

// rawString accepts either a JSON string or a bare number, the two shapes a
// grid dimension arrives in.
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func (h *Handler) toResp(l domain.Layout) layoutResp {
	out := layoutResp{Columns: l.Config.Columns, Rows: l.Config.Rows, Results: make([]resultResp, 0, len(l.Results))}
	for _, res := range l.Results {
		rr := resultResp{Descriptor: res.Descriptor, Reason: res.Reason}
		if res.Accepted() {
			p := res.Placement
			rr.Placement = &p
		} else {
			hh := h.UC.Hint(l.Config, res)
			rr.Hint = &hh
		}
		out.Results = append(out.Results, rr)
	}
	return out
}

func (h *Handler) handlePlace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResp{Error: "method not allowed"})
		return
	}
	var req placeReq
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	cfg := domain.NewGridConfig()
	cfg.SetColumns(rawString(req.Columns))
	cfg.SetRows(rawString(req.Rows))
	l, err := h.UC.Place(r.Context(), cfg, req.Children)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, h.toResp(l))
}

// ---- Render / Preview ----

// readBoards parses the posted markup, sanitizing it first when configured.
func (h *Handler) readBoards(w http.ResponseWriter, r *http.Request) ([]*domain.Board, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if h.Sanitizer != nil {
		body = h.Sanitizer.SanitizeBytes(body)
	}
	boards, err := markup.Parse(bytes.NewReader(body))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return boards, true
}

func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	boards, ok := h.readBoards(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	for _, b := range boards {
		if err := h.UC.Render(r.Context(), &buf, b); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		buf.WriteByte('\n')
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	boards, ok := h.readBoards(w, r)
	if !ok {
		return
	}
	h.writePreview(w, r, boards[0])
}

func (h *Handler) writePreview(w http.ResponseWriter, r *http.Request, b *domain.Board) {
	width, _ := strconv.Atoi(r.URL.Query().Get("width"))
	height, _ := strconv.Atoi(r.URL.Query().Get("height"))
	img, err := h.UC.Preview(r.Context(), b, width, height)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, img); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

// ---- Generate ----

type generateReq struct {
	Seed    int64           `json:"seed,omitempty"`
	Columns json.RawMessage `json:"columns,omitempty"`
	Rows    json.RawMessage `json:"rows,omitempty"`
	Count   int             `json:"count,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req generateReq
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	count := req.Count
	if count <= 0 {
		count = 8
	}
	cfg := domain.NewGridConfig()
	cfg.SetColumns(rawString(req.Columns))
	cfg.SetRows(rawString(req.Rows))
	b, err := h.UC.Generate(r.Context(), seed, cfg, count)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := h.UC.Render(r.Context(), &buf, b); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Board-Seed", strconv.FormatInt(seed, 10))
	_, _ = w.Write(buf.Bytes())
}

// ---- Boards ----

type listResp struct {
	Boards []domain.BoardMeta `json:"boards"`
	Error  string             `json:"error,omitempty"`
}

func (h *Handler) handleBoards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResp{Error: "method not allowed"})
		return
	}
	bs, err := h.UC.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, listResp{Error: err.Error()})
		return
	}
	if bs == nil {
		bs = []domain.BoardMeta{}
	}
	writeJSON(w, http.StatusOK, listResp{Boards: bs})
}

func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResp{Error: "method not allowed"})
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "missing id"})
		return
	}
	b, err := h.UC.Load(r.Context(), id)
	if err != nil {
		writeJSON(w, statusFor(err), errorResp{Error: err.Error()})
		return
	}
	l, err := h.UC.Layout(r.Context(), b)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: err.Error()})
		return
	}
	resp := h.toResp(l)
	resp.ID, resp.Name, resp.Width, resp.Height = b.ID, b.Name, b.Width, b.Height
	writeJSON(w, http.StatusOK, resp)
}

type boardPage struct {
	Board      *domain.Board
	Markup     template.HTML
	Rejections []resultResp
}

// handleBoardPage serves /boards/{id} as an HTML page and /boards/{id}.png as a preview.
func (h *Handler) handleBoardPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/boards/")
	png := strings.HasSuffix(id, ".png")
	id = strings.TrimSuffix(id, ".png")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	b, err := h.UC.Load(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	if png {
		h.writePreview(w, r, b)
		return
	}
	if h.Pages == nil {
		http.Error(w, "pages not configured", http.StatusNotImplemented)
		return
	}
	l, err := h.UC.Layout(r.Context(), b)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := markup.Render(&buf, b, l); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	page := boardPage{Board: b, Markup: template.HTML(buf.String())}
	for _, rr := range h.toResp(l).Results {
		if rr.Reason != domain.Accepted {
			page.Rejections = append(page.Rejections, rr)
		}
	}
	var out bytes.Buffer
	if err := h.Pages.ExecuteTemplate(&out, "board.tmpl", page); err != nil {
		ctxlog.FromContext(r.Context()).Error("board page", "id", id, "err", err)
		http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(out.Bytes())
}

func statusFor(err error) int {
	if errors.Is(err, os.ErrNotExist) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
