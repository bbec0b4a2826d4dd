package api

import (
	"context"
	"fmt"
	"net/url"
)

// ExportKind selects which export endpoint to call.
type ExportKind string

const (
	ExportRequestsCSV ExportKind = "requests"
	ExportAgenciesCSV ExportKind = "agencies"
	ExportRevenueCSV  ExportKind = "revenue"
	ExportSummaryPDF  ExportKind = "summary"
)

// exportPaths maps export kinds to their endpoints.
var exportPaths = map[ExportKind]string{
	ExportRequestsCSV: "/exports/requests.csv",
	ExportAgenciesCSV: "/exports/agencies.csv",
	ExportRevenueCSV:  "/exports/revenue.csv",
	ExportSummaryPDF:  "/exports/summary.pdf",
}

// DownloadExport fetches a binary export and returns the payload bytes
// with the server content type.
func (c *Client) DownloadExport(
	ctx context.Context, kind ExportKind, query url.Values,
) ([]byte, string, error) {
	path, ok := exportPaths[kind]
	if !ok {
		return nil, "", fmt.Errorf("unknown export kind %q", kind)
	}

	data, contentType, err := c.GetBlob(ctx, path, query)
	if err != nil {
		return nil, "", fmt.Errorf("downloading %s export: %w", kind, err)
	}
	return data, contentType, nil
}
