package transform

import "strings"

// Nest rebuilds the object tree implied by dotted parameter paths:
// "Device.WiFi.SSID" becomes {"Device":{"WiFi":{"SSID":...}}}.
func Nest(flat map[string]any) map[string]any {
	tree := make(map[string]any)

	for path, value := range flat {
		segments := make([]string, 0, strings.Count(path, ".")+1)
		for _, s := range strings.Split(path, ".") {
			if s != "" {
				segments = append(segments, s)
			}
		}

		if len(segments) == 0 {
			continue
		}

		node := tree
		for _, segment := range segments[:len(segments)-1] {
			child, ok := node[segment].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[segment] = child
			}
			node = child
		}

		node[segments[len(segments)-1]] = value
	}

	return tree
}
