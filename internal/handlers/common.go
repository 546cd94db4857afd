package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// parseKeys extracts item keys from query parameters, supporting both multiple
// 'keys' parameters and comma-separated values.
func parseKeys(c *fiber.Ctx) []string {
	keyMap := make(map[string]struct{})

	// Visit all query arguments to collect multiple 'keys' parameters
	args := c.Context().QueryArgs()
	for key, value := range args.All() {
		if string(key) == "keys" {
			// Split by comma in case the value itself is comma-separated
			vals := strings.Split(string(value), ",")
			for _, v := range vals {
				v = strings.TrimSpace(v)
				if v != "" {
					keyMap[v] = struct{}{}
				}
			}
		}
	}

	if len(keyMap) == 0 {
		return nil
	}

	keys := make([]string, 0, len(keyMap))
	for k := range keyMap {
		keys = append(keys, k)
	}

	return keys
}
