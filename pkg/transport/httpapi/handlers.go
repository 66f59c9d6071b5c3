package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/matzehuels/framescope/pkg/buildinfo"
	"github.com/matzehuels/framescope/pkg/cache"
	"github.com/matzehuels/framescope/pkg/errors"
	"github.com/matzehuels/framescope/pkg/geometry"
	"github.com/matzehuels/framescope/pkg/inspector"
	"github.com/matzehuels/framescope/pkg/io"
	"github.com/matzehuels/framescope/pkg/render/nodelink"
	"github.com/matzehuels/framescope/pkg/render/svg"
	"github.com/matzehuels/framescope/pkg/spacing"
)

// =============================================================================
// Response Types
// =============================================================================

type nodeResponse struct {
	ID       string        `json:"id"`
	ParentID string        `json:"parent_id,omitempty"`
	Frame    geometry.Rect `json:"frame"`
	ZIndex   int           `json:"z_index"`
}

type nodesResponse struct {
	Nodes []nodeResponse `json:"nodes"`
}

type spacingResponse struct {
	From     string         `json:"from"`
	FromEdge geometry.Edge  `json:"from_edge"`
	To       string         `json:"to"`
	ToEdge   geometry.Edge  `json:"to_edge"`
	Length   float64        `json:"length"`
	Label    string         `json:"label"`
	Start    geometry.Point `json:"start"`
	End      geometry.Point `json:"end"`
}

type spacingsResponse struct {
	Spacings []spacingResponse `json:"spacings"`
}

type selectionResponse struct {
	State    string `json:"state"`
	Selected string `json:"selected,omitempty"`
	Focused  string `json:"focused,omitempty"`
	Enabled  bool   `json:"enabled"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type passResponse struct {
	Pass  uint64 `json:"pass"`
	Nodes int    `json:"nodes"`
}

// =============================================================================
// Request Types
// =============================================================================

type selectionRequest struct {
	Selected string `json:"selected"`
	Focused  string `json:"focused"`
}

// gestureRequest names a node directly or by a point to hit-test.
type gestureRequest struct {
	ID string   `json:"id"`
	X  *float64 `json:"x"`
	Y  *float64 `json:"y"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handlePublishPass(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	f, err := io.ReadFrames(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	if !s.rec.Enabled() {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "inspection is disabled"))
		return
	}
	if f.Width > 0 && f.Height > 0 {
		s.SetViewport(f.Viewport())
	}
	set := s.rec.Publish(r.Context(), f.Set().Nodes())
	writeJSON(w, http.StatusAccepted, passResponse{Pass: s.rec.Passes(), Nodes: set.Len()})
}

func (s *Server) handleNodes(w http.ResponseWriter, _ *http.Request) {
	set := s.ctrl.Set()
	out := nodesResponse{Nodes: make([]nodeResponse, 0, set.Len())}
	for _, n := range set.Nodes() {
		out.Nodes = append(out.Nodes, nodeResponse{
			ID:       n.ID,
			ParentID: n.ParentID,
			Frame:    n.Frame,
			ZIndex:   set.ZIndex(n),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSpacings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, spacingsResponse{Spacings: toSpacingResponses(s.ctrl.Spacings())})
}

func toSpacingResponses(ss []spacing.Spacing) []spacingResponse {
	out := make([]spacingResponse, 0, len(ss))
	for _, sp := range ss {
		out = append(out, spacingResponse{
			From:     sp.From.ID,
			FromEdge: sp.FromEdge,
			To:       sp.To.ID,
			ToEdge:   sp.ToEdge,
			Length:   sp.Length(),
			Label:    sp.Label(),
			Start:    sp.Start(),
			End:      sp.End(),
		})
	}
	return out
}

func (s *Server) selectionResponse(sel inspector.Selection) selectionResponse {
	selected, focused := sel.IDs()
	return selectionResponse{
		State:    sel.State.String(),
		Selected: selected,
		Focused:  focused,
		Enabled:  s.ctrl.Enabled(),
	}
}

func (s *Server) handleGetSelection(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.selectionResponse(s.ctrl.Selection()))
}

func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	sel, err := s.ctrl.OnSelectionChanged(r.Context(), req.Selected, req.Focused)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.selectionResponse(sel))
}

func (s *Server) handleTap(w http.ResponseWriter, r *http.Request) {
	s.handleGesture(w, r, s.ctrl.Tap)
}

func (s *Server) handleDoubleTap(w http.ResponseWriter, r *http.Request) {
	s.handleGesture(w, r, s.ctrl.DoubleTap)
}

func (s *Server) handleGesture(w http.ResponseWriter, r *http.Request, gesture func(ctx context.Context, id string) inspector.Selection) {
	var req gestureRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !s.ctrl.Enabled() {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "inspection is disabled"))
		return
	}
	id, err := s.resolveTarget(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.selectionResponse(gesture(r.Context(), id)))
}

func (s *Server) resolveTarget(req gestureRequest) (string, error) {
	if req.ID != "" {
		if _, ok := s.ctrl.Set().Node(req.ID); !ok {
			return "", errors.New(errors.ErrCodeNodeNotFound, "node %q not in current pass", req.ID)
		}
		return req.ID, nil
	}
	if req.X == nil || req.Y == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "gesture needs an id or both x and y")
	}
	p := geometry.Point{X: *req.X, Y: *req.Y}
	n, ok := s.ctrl.HitTest(p)
	if !ok {
		return "", errors.New(errors.ErrCodeNodeNotFound, "no node at (%g, %g)", p.X, p.Y)
	}
	return n.ID, nil
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	s.ctrl.ToggleInspection(r.Context())
	writeJSON(w, http.StatusOK, s.selectionResponse(s.ctrl.Selection()))
}

func (s *Server) handleOverlaySVG(w http.ResponseWriter, r *http.Request) {
	var opts []svg.SVGOption
	if r.URL.Query().Get("ids") != "" {
		opts = append(opts, svg.WithNodeIDs())
	}
	opts = append(opts, svg.WithInteraction())

	data := svg.RenderSVG(s.ctrl.Overlay(), s.currentViewport(), opts...)
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(data)
}

func (s *Server) hierarchyDOT(r *http.Request) string {
	selected, focused := s.ctrl.Selection().IDs()
	return nodelink.ToDOT(s.ctrl.Set(), nodelink.Options{
		Detailed:  r.URL.Query().Get("detailed") != "",
		Selected:  selected,
		Focused:   focused,
		Highlight: s.ctrl.Style().Highlight,
	})
}

func (s *Server) handleHierarchyDOT(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	fmt.Fprint(w, s.hierarchyDOT(r))
}

func (s *Server) handleHierarchySVG(w http.ResponseWriter, r *http.Request) {
	dot := s.hierarchyDOT(r)
	data, hit, err := cache.Fetch(r.Context(), s.cache, cache.HierarchyKey(dot, "svg"), hierarchyTTL, func() ([]byte, error) {
		return nodelink.RenderSVG(r.Context(), dot)
	})
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render hierarchy"))
		return
	}
	s.Logger.Debug("hierarchy rendered", "cached", hit, "bytes", len(data))
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(data)
}
