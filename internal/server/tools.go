package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the photo (PNG or JPEG)",
}

var sessionProperty = map[string]interface{}{
	"type":        "string",
	"description": "Session id returned by redact_open",
}

var regionsProperty = map[string]interface{}{
	"type": "array",
	"description": "Regions to redact. Each region is an array of exactly 4 corner points {\"x\": int, \"y\": int} " +
		"forming an axis-aligned rectangle, as returned by detect_text_regions. Invalid regions are dropped and reported.",
	"items": map[string]interface{}{
		"type": "array",
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"x": map[string]interface{}{"type": "integer"},
				"y": map[string]interface{}{"type": "integer"},
			},
		},
	},
}

var strategyProperty = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"convolution", "composite", "fill"},
	"description": "Redaction strategy. convolution blurs each region with a smoothed edge, composite blends a Gaussian blur through a feathered mask, fill paints regions with the photo's dominant color. Default from config.",
}

var radiusProperty = map[string]interface{}{
	"type":        "integer",
	"description": "Blur radius in pixels, capped at 31. 0 or omitted derives the radius from the average size of the active regions.",
}

var formatProperty = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"png", "jpeg"},
	"description": "Output encoding (default: png)",
}

var outputPathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Optional path to also write the redacted photo to. Format follows the file extension.",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_info",
			Description: "Load a photo and return its dimensions, format and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_validate",
			Description: "Check that a photo can be redacted: PNG or JPEG by content, within the size limit for its type, and within the maximum resolution.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Extract the most common colors of a photo or region. The fill strategy paints regions with the first of these.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return (default: 5)",
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional region to analyze {x1, y1, x2, y2}, x2 and y2 exclusive",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
					},
				},
				"required": []string{"path"},
			},
		},

		// Detection
		{
			Name:        "detect_text_regions",
			Description: "Find text in a photo and return one 4-point region per hit, ready to pass to redact_open or redact_image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"method": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"ocr", "heuristic"},
						"description": "ocr uses Tesseract word boxes, heuristic scans for dense horizontal edges (default: ocr)",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language, e.g. eng or eng+deu (default from config)",
					},
					"min_confidence": map[string]interface{}{
						"type":        "number",
						"description": "Drop hits below this confidence, 0.0 to 1.0 (default: 0)",
					},
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels added around each word box, ocr only (default: 0)",
					},
				},
				"required": []string{"path"},
			},
		},

		// Redaction Sessions
		{
			Name:        "redact_open",
			Description: "Open a photo for interactive redaction. Validates the upload and its regions and returns a session id for redact_render, redact_toggle and redact_preview.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty,
					"regions":  regionsProperty,
					"strategy": strategyProperty,
				},
				"required": []string{"path", "regions"},
			},
		},
		{
			Name:        "redact_render",
			Description: "Render the session's photo with every active region redacted. Returns base64-encoded image data.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session":     sessionProperty,
					"radius":      radiusProperty,
					"strategy":    strategyProperty,
					"format":      formatProperty,
					"output_path": outputPathProperty,
				},
				"required": []string{"session"},
			},
		},
		{
			Name:        "redact_toggle",
			Description: "Toggle redaction of every region under a clicked point. Coordinates are in the display space; the photo is assumed to be shown at display_width x display_height.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty,
					"x": map[string]interface{}{
						"type":        "number",
						"description": "Clicked X coordinate in display space",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Clicked Y coordinate in display space",
					},
					"display_width": map[string]interface{}{
						"type":        "number",
						"description": "Displayed photo width (0 or omitted: natural width)",
					},
					"display_height": map[string]interface{}{
						"type":        "number",
						"description": "Displayed photo height (0 or omitted: natural height)",
					},
				},
				"required": []string{"session", "x", "y"},
			},
		},
		{
			Name:        "redact_preview",
			Description: "Return the unredacted photo with region outlines: red for regions that will be redacted, cyan for regions toggled off.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty,
					"thickness": map[string]interface{}{
						"type":        "integer",
						"description": "Outline thickness in pixels (default: 2)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor for the preview (default: 1.0)",
					},
				},
				"required": []string{"session"},
			},
		},
		{
			Name:        "redact_close",
			Description: "Close a redaction session and release its photo.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session": sessionProperty,
				},
				"required": []string{"session"},
			},
		},
		{
			Name:        "redact_image",
			Description: "Redact a photo in one call without opening a session.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty,
					"regions":     regionsProperty,
					"strategy":    strategyProperty,
					"radius":      radiusProperty,
					"format":      formatProperty,
					"output_path": outputPathProperty,
				},
				"required": []string{"path", "regions"},
			},
		},

		// Photo Cache
		{
			Name:        "cache_refresh",
			Description: "Choose which photos to keep in the cache. Newer photos are worth more; the most valuable set that fits in the capacity is selected and the cache is rewritten with their data URLs. On any failure the cache is left as it was.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"photos": map[string]interface{}{
						"type":        "array",
						"description": "Candidate photos",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"id":           map[string]interface{}{"type": "string"},
								"size_kb":      map[string]interface{}{"type": "integer"},
								"date_created": map[string]interface{}{"type": "string", "description": "RFC 3339 timestamp"},
								"path":         map[string]interface{}{"type": "string"},
							},
							"required": []string{"id", "size_kb", "date_created", "path"},
						},
					},
					"capacity_kb": map[string]interface{}{
						"type":        "integer",
						"description": "Cache capacity in KB (default from config, 409)",
					},
				},
				"required": []string{"photos"},
			},
		},
		{
			Name:        "cache_get",
			Description: "Return the cached data URL of a photo, if it was selected by the last cache_refresh.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Photo id",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "cache_list",
			Description: "List the keys currently in the photo cache with their stored sizes.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}
