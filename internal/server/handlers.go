package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ironsheep/image-redact-mcp/internal/detect"
	"github.com/ironsheep/image-redact-mcp/internal/imaging"
	"github.com/ironsheep/image-redact-mcp/internal/photocache"
	"github.com/ironsheep/image-redact-mcp/internal/pixels"
	"github.com/ironsheep/image-redact-mcp/internal/redact"
	"github.com/ironsheep/image-redact-mcp/internal/region"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "redact_open", "cache_refresh").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	s.log.Debug().Str("tool", params.Name).Msg("tool call")

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Str("tool", params.Name).Err(err).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies configured defaults for optional parameters
//  3. Loads photos through the image cache or looks up the session
//  4. Calls into the redact, detect or photocache packages
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Image Information
	case "image_info":
		return s.handleImageInfo(args)
	case "image_validate":
		return s.handleImageValidate(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

	// Detection
	case "detect_text_regions":
		return s.handleDetectTextRegions(args)

	// Redaction Sessions
	case "redact_open":
		return s.handleRedactOpen(args)
	case "redact_render":
		return s.handleRedactRender(args)
	case "redact_toggle":
		return s.handleRedactToggle(args)
	case "redact_preview":
		return s.handleRedactPreview(args)
	case "redact_close":
		return s.handleRedactClose(args)
	case "redact_image":
		return s.handleRedactImage(args)

	// Photo Cache
	case "cache_refresh":
		return s.handleCacheRefresh(args)
	case "cache_get":
		return s.handleCacheGet(args)
	case "cache_list":
		return s.handleCacheList(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageValidate(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.ValidateUpload(a.Path, s.uploadLimits())
}

type imageDominantColorsArgs struct {
	Path   string `json:"path"`
	Count  int    `json:"count"`
	Region *struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var r *imaging.Region
	if a.Region != nil {
		r = &imaging.Region{X1: a.Region.X1, Y1: a.Region.Y1, X2: a.Region.X2, Y2: a.Region.Y2}
	}
	return imaging.DominantColors(img, a.Count, r), nil
}

// === Detection Handlers ===

type detectTextRegionsArgs struct {
	Path          string  `json:"path"`
	Method        string  `json:"method"`
	Language      string  `json:"language"`
	MinConfidence float64 `json:"min_confidence"`
	Padding       int     `json:"padding"`
}

type detectTextRegionsResult struct {
	Method  string           `json:"method"`
	Count   int              `json:"count"`
	Regions [][]region.Point `json:"regions"`
}

func (s *Server) handleDetectTextRegions(args json.RawMessage) (interface{}, error) {
	var a detectTextRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Method == "" {
		a.Method = "ocr"
	}
	if a.Language == "" {
		a.Language = s.cfg.Detection.Language
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var quads [][]region.Point
	switch a.Method {
	case "ocr":
		quads, err = detect.TextRegionsWithOptions(img, detect.Options{
			Language:      a.Language,
			MinConfidence: a.MinConfidence,
			Padding:       a.Padding,
		})
		if err != nil {
			return nil, err
		}
	case "heuristic":
		quads = detect.HeuristicTextRegions(img, a.MinConfidence)
	default:
		return nil, fmt.Errorf("unknown detection method: %q (use ocr or heuristic)", a.Method)
	}
	if quads == nil {
		quads = [][]region.Point{}
	}

	return &detectTextRegionsResult{
		Method:  a.Method,
		Count:   len(quads),
		Regions: quads,
	}, nil
}

// === Redaction Handlers ===

// regionReport summarizes how a regions document was validated.
type regionReport struct {
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	Kept           int           `json:"kept"`
	Dropped        int           `json:"dropped"`
	DroppedReasons []string      `json:"dropped_reasons,omitempty"`
	Regions        []region.Rect `json:"regions"`
}

type renderResult struct {
	*imaging.EncodedImage
	Radius    int         `json:"radius"`
	Strategy  redact.Kind `json:"strategy"`
	SavedPath string      `json:"saved_path,omitempty"`
}

// buildEngine validates the upload at path, parses its regions and returns
// an engine ready to render. Invalid regions are dropped and reported.
func (s *Server) buildEngine(path string, regions json.RawMessage, strategyName string) (*redact.Engine, *regionReport, error) {
	if path == "" {
		return nil, nil, errors.New("path is required")
	}
	strategy, err := s.strategyFor(strategyName)
	if err != nil {
		return nil, nil, err
	}
	if _, err := imaging.ValidateUpload(path, s.uploadLimits()); err != nil {
		return nil, nil, err
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, nil, err
	}
	buf := pixels.FromImage(img)

	doc, err := regionsDocument(regions)
	if err != nil {
		return nil, nil, err
	}
	rects, dropped, err := region.ParseRegions(doc, buf.Width(), buf.Height())
	if err != nil {
		return nil, nil, err
	}

	reasons := make([]string, 0, len(dropped))
	for _, d := range dropped {
		ev := s.log.Debug().Str("path", path)
		var re *region.RectError
		if errors.As(d, &re) {
			ev = ev.Int("index", re.Index).Str("kind", re.Kind.Error())
		}
		ev.Err(d).Msg("dropped region")
		reasons = append(reasons, d.Error())
	}

	return redact.NewEngine(strategy, buf, rects), &regionReport{
		Width:          buf.Width(),
		Height:         buf.Height(),
		Kept:           len(rects),
		Dropped:        len(dropped),
		DroppedReasons: reasons,
		Regions:        rects,
	}, nil
}

// regionsDocument accepts regions either as a JSON array or as a string
// holding one. A missing value means no regions.
func regionsDocument(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []byte("[]"), nil
	}
	if raw[0] == '"' {
		var doc string
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("invalid regions: %w", err)
		}
		return []byte(doc), nil
	}
	return raw, nil
}

// strategyFor resolves a strategy name, falling back to the configured
// default when name is empty.
func (s *Server) strategyFor(name string) (redact.Strategy, error) {
	if strings.TrimSpace(name) == "" {
		name = s.cfg.Redaction.DefaultStrategy
	}
	kind, err := redact.ParseKind(name)
	if err != nil {
		return nil, err
	}
	return redact.NewStrategy(kind)
}

// resolveRadius picks the blur radius for a render. A non-positive request
// uses the configured default, and when that is 0 too the radius is derived
// from the active regions.
func (s *Server) resolveRadius(requested int, rects []region.Rect) int {
	limit := s.cfg.Redaction.MaxRadius
	if limit <= 0 || limit > redact.MaxRadius {
		limit = redact.MaxRadius
	}

	r := requested
	if r <= 0 {
		r = s.cfg.Redaction.DefaultRadius
	}
	if r <= 0 {
		r = redact.DefaultRadius(rects)
	}
	if r > limit {
		r = limit
	}
	return r
}

func (s *Server) render(engine *redact.Engine, radius int, format, outputPath string) (*renderResult, error) {
	if _, err := imaging.ParseFormat(format); err != nil {
		return nil, err
	}
	out := engine.Render(radius).Image()

	if outputPath != "" {
		if err := imaging.SaveImage(out, outputPath); err != nil {
			return nil, err
		}
	}
	enc, err := imaging.EncodeBase64(out, format)
	if err != nil {
		return nil, err
	}
	kind, _ := redact.KindOf(engine.Strategy())
	return &renderResult{
		EncodedImage: enc,
		Radius:       radius,
		Strategy:     kind,
		SavedPath:    outputPath,
	}, nil
}

type redactOpenArgs struct {
	Path     string          `json:"path"`
	Regions  json.RawMessage `json:"regions"`
	Strategy string          `json:"strategy"`
}

type redactOpenResult struct {
	Session  string      `json:"session"`
	Strategy redact.Kind `json:"strategy"`
	regionReport
}

func (s *Server) handleRedactOpen(args json.RawMessage) (interface{}, error) {
	var a redactOpenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	engine, report, err := s.buildEngine(a.Path, a.Regions, a.Strategy)
	if err != nil {
		return nil, err
	}
	sess := s.openSession(a.Path, engine)
	kind, _ := redact.KindOf(engine.Strategy())

	s.log.Debug().
		Str("session", sess.id).
		Str("path", a.Path).
		Int("kept", report.Kept).
		Int("dropped", report.Dropped).
		Msg("session opened")

	return &redactOpenResult{
		Session:      sess.id,
		Strategy:     kind,
		regionReport: *report,
	}, nil
}

type redactRenderArgs struct {
	Session    string `json:"session"`
	Radius     int    `json:"radius"`
	Strategy   string `json:"strategy"`
	Format     string `json:"format"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleRedactRender(args json.RawMessage) (interface{}, error) {
	var a redactRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.Session)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if a.Strategy != "" {
		strategy, err := s.strategyFor(a.Strategy)
		if err != nil {
			return nil, err
		}
		sess.engine.SetStrategy(strategy)
	}
	radius := s.resolveRadius(a.Radius, sess.engine.Regions())
	return s.render(sess.engine, radius, a.Format, a.OutputPath)
}

type redactToggleArgs struct {
	Session       string  `json:"session"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	DisplayWidth  float64 `json:"display_width"`
	DisplayHeight float64 `json:"display_height"`
}

type redactToggleResult struct {
	Hit     bool          `json:"hit"`
	Active  int           `json:"active"`
	Regions []region.Rect `json:"regions"`
}

func (s *Server) handleRedactToggle(args json.RawMessage) (interface{}, error) {
	var a redactToggleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.Session)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	hit := sess.engine.ToggleRegionAt(a.X, a.Y, a.DisplayWidth, a.DisplayHeight)
	rects := sess.engine.Regions()
	return &redactToggleResult{
		Hit:     hit,
		Active:  len(region.Active(rects)),
		Regions: rects,
	}, nil
}

type redactPreviewArgs struct {
	Session   string  `json:"session"`
	Thickness int     `json:"thickness"`
	Scale     float64 `json:"scale"`
}

type redactPreviewResult struct {
	*imaging.EncodedImage
	Regions []region.Rect `json:"regions"`
}

func (s *Server) handleRedactPreview(args json.RawMessage) (interface{}, error) {
	var a redactPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Thickness == 0 {
		a.Thickness = 2
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	sess, err := s.session(a.Session)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	rects := sess.engine.Regions()
	photo := pixels.ToImage(sess.engine.Image())
	sess.mu.Unlock()

	outlines := make([]imaging.Outline, len(rects))
	for i, r := range rects {
		c := imaging.InactiveOutline
		if r.ToBeBlurred {
			c = imaging.ActiveOutline
		}
		outlines[i] = imaging.Outline{Bounds: r.Bounds(), Color: c}
	}

	preview := imaging.Scale(imaging.OutlineRegions(photo, outlines, a.Thickness), a.Scale)
	enc, err := imaging.EncodeBase64(preview, "png")
	if err != nil {
		return nil, err
	}
	return &redactPreviewResult{EncodedImage: enc, Regions: rects}, nil
}

type redactSessionArgs struct {
	Session string `json:"session"`
}

func (s *Server) handleRedactClose(args json.RawMessage) (interface{}, error) {
	var a redactSessionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.closeSession(a.Session); err != nil {
		return nil, err
	}
	s.log.Debug().Str("session", a.Session).Msg("session closed")
	return map[string]interface{}{
		"session": a.Session,
		"closed":  true,
	}, nil
}

type redactImageArgs struct {
	Path       string          `json:"path"`
	Regions    json.RawMessage `json:"regions"`
	Strategy   string          `json:"strategy"`
	Radius     int             `json:"radius"`
	Format     string          `json:"format"`
	OutputPath string          `json:"output_path"`
}

type redactImageResult struct {
	renderResult
	Kept           int      `json:"kept"`
	Dropped        int      `json:"dropped"`
	DroppedReasons []string `json:"dropped_reasons,omitempty"`
}

func (s *Server) handleRedactImage(args json.RawMessage) (interface{}, error) {
	var a redactImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	engine, report, err := s.buildEngine(a.Path, a.Regions, a.Strategy)
	if err != nil {
		return nil, err
	}
	radius := s.resolveRadius(a.Radius, report.Regions)
	rendered, err := s.render(engine, radius, a.Format, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &redactImageResult{
		renderResult:   *rendered,
		Kept:           report.Kept,
		Dropped:        report.Dropped,
		DroppedReasons: report.DroppedReasons,
	}, nil
}

// === Photo Cache Handlers ===

type cachePhoto struct {
	ID          string    `json:"id"`
	SizeKB      int       `json:"size_kb"`
	DateCreated time.Time `json:"date_created"`
	Path        string    `json:"path"`
}

type cacheRefreshArgs struct {
	Photos     []cachePhoto `json:"photos"`
	CapacityKB *int         `json:"capacity_kb"`
}

type cacheRefreshResult struct {
	Selected    []string `json:"selected"`
	Count       int      `json:"count"`
	TotalSizeKB int      `json:"total_size_kb"`
	CapacityKB  int      `json:"capacity_kb"`
}

func (s *Server) handleCacheRefresh(args json.RawMessage) (interface{}, error) {
	var a cacheRefreshArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	capacity := s.cfg.CapacityKB()
	if a.CapacityKB != nil {
		capacity = *a.CapacityKB
	}
	if capacity > s.cfg.Cache.MaxCapacityKB {
		return nil, fmt.Errorf("capacity_kb %d exceeds the maximum of %d", capacity, s.cfg.Cache.MaxCapacityKB)
	}

	paths := make(map[string]string, len(a.Photos))
	photos := make([]photocache.Photo, 0, len(a.Photos))
	for i, p := range a.Photos {
		if p.ID == "" {
			return nil, fmt.Errorf("photo %d: id is required", i)
		}
		if p.Path == "" {
			return nil, fmt.Errorf("photo %s: path is required", p.ID)
		}
		paths[p.ID] = p.Path
		photos = append(photos, photocache.Photo{ID: p.ID, SizeKB: p.SizeKB, Created: p.DateCreated})
	}

	serialize := func(_ context.Context, p photocache.Photo) (string, error) {
		path := paths[p.ID]
		img, err := s.cache.Load(path)
		if err != nil {
			return "", err
		}
		return imaging.DataURL(img, cacheFormat(path))
	}

	selected, err := photocache.Refresh(context.Background(), s.photos, photos, s.now(), capacity, s.cfg.Cache.Workers, serialize)
	if err != nil {
		s.log.Warn().Err(err).Int("photos", len(photos)).Msg("cache refresh failed")
		return nil, err
	}

	ids := make([]string, len(selected))
	for i, c := range selected {
		ids[i] = c.ID
	}
	total := photocache.TotalSizeKB(selected)

	s.log.Info().
		Int("photos", len(photos)).
		Int("selected", len(selected)).
		Int("total_kb", total).
		Int("capacity_kb", capacity).
		Msg("photo cache refreshed")

	return &cacheRefreshResult{
		Selected:    ids,
		Count:       len(ids),
		TotalSizeKB: total,
		CapacityKB:  capacity,
	}, nil
}

// cacheFormat keeps JPEG photos as JPEG in the cache; everything else is
// stored as PNG.
func cacheFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "jpg" || ext == "jpeg" {
		return "jpeg"
	}
	return "png"
}

type cacheGetArgs struct {
	ID string `json:"id"`
}

type cacheGetResult struct {
	ID      string `json:"id"`
	Key     string `json:"key"`
	Found   bool   `json:"found"`
	DataURL string `json:"data_url,omitempty"`
}

func (s *Server) handleCacheGet(args json.RawMessage) (interface{}, error) {
	var a cacheGetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ID == "" {
		return nil, errors.New("id is required")
	}
	key := photocache.Key(a.ID)
	data, ok, err := s.photos.Get(key)
	if err != nil {
		return nil, err
	}
	return &cacheGetResult{ID: a.ID, Key: key, Found: ok, DataURL: data}, nil
}

type cacheListEntry struct {
	Key   string `json:"key"`
	Bytes int    `json:"bytes"`
}

func (s *Server) handleCacheList(_ json.RawMessage) (interface{}, error) {
	entries, err := s.photos.Entries()
	if err != nil {
		return nil, err
	}
	list := make([]cacheListEntry, len(entries))
	for i, e := range entries {
		list[i] = cacheListEntry{Key: e.Key, Bytes: len(e.Image)}
	}
	return map[string]interface{}{
		"count":   len(list),
		"entries": list,
	}, nil
}
