package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// fromJSON flattens structured data into "path: value" lines so the
// chunker and embedder see readable prose-like text instead of syntax.
func fromJSON(content []byte) (Result, error) {
	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return Result{}, fmt.Errorf("%w: parse json: %w", domain.ErrExtractionFailed, err)
	}

	var lines []string
	flattenJSON("", v, &lines)
	return Result{Text: strings.Join(lines, "\n")}, nil
}

func flattenJSON(path string, v any, lines *[]string) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys) // deterministic order for stable chunk content
		for _, k := range keys {
			flattenJSON(joinPath(path, k), val[k], lines)
		}
	case []any:
		for i, item := range val {
			flattenJSON(joinPath(path, strconv.Itoa(i)), item, lines)
		}
	case string:
		*lines = append(*lines, path+": "+val)
	case float64:
		*lines = append(*lines, path+": "+strconv.FormatFloat(val, 'f', -1, 64))
	case bool:
		*lines = append(*lines, path+": "+strconv.FormatBool(val))
	case nil:
		*lines = append(*lines, path+": null")
	}
}

func joinPath(path, key string) string {
	key = strings.ReplaceAll(key, "_", " ")
	if path == "" {
		return key
	}
	return path + "." + key
}
