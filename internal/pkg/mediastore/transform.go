package mediastore

import (
	"fmt"
	"strings"
)

// Transformation renders ingest directives as a Cloudinary transformation
// string, e.g. "c_limit,w_2000,h_2000,q_auto,f_auto".
func Transformation(opts IngestOptions) string {
	var parts []string

	if opts.MaxWidth > 0 || opts.MaxHeight > 0 {
		parts = append(parts, "c_limit")
		if opts.MaxWidth > 0 {
			parts = append(parts, fmt.Sprintf("w_%d", opts.MaxWidth))
		}
		if opts.MaxHeight > 0 {
			parts = append(parts, fmt.Sprintf("h_%d", opts.MaxHeight))
		}
	}
	if opts.Quality != "" {
		parts = append(parts, "q_"+opts.Quality)
	}
	if opts.Format != "" {
		parts = append(parts, "f_"+opts.Format)
	}

	return strings.Join(parts, ",")
}
