package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/koustreak/dbmcp/internal/database"
	"github.com/koustreak/dbmcp/internal/errs"
	"github.com/koustreak/dbmcp/internal/format"
	"github.com/koustreak/dbmcp/internal/logger"
)

// ExportResult is the JSON document export_query returns.
type ExportResult struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Rows   int    `json:"rows"`
	Size   int64  `json:"size"`
	URL    string `json:"url"`
}

// ExportQuery renders a query result, uploads it to the export bucket and
// returns a presigned download URL.
func (s *Server) ExportQuery(ctx context.Context, _ *mcp.CallToolRequest, in ExportArgs) (*mcp.CallToolResult, any, error) {
	return s.withConn(ctx, "export_query", overrides(in.User, in.Password, in.URL), func(ctx context.Context, conn *database.Conn) (string, error) {
		if s.store == nil {
			return "", errs.New(errs.ErrKindUnknown, "export storage is not configured")
		}

		f, err := format.ParseFormat(stringOr(in.Format, ""))
		if err != nil {
			return "", err
		}

		text, rows, err := s.renderRows(ctx, conn, in.Query, f, rowLimit(in.MaxRows, defaultMaxRows))
		if err != nil {
			return "", err
		}

		bucket := s.cfg.Export.Store.Bucket
		key := fmt.Sprintf("%s%d.%s", s.cfg.Export.Prefix, s.now().UnixNano(), f.Extension())

		info, err := s.store.PutObject(ctx, bucket, key, strings.NewReader(text), int64(len(text)), f.ContentType())
		if err != nil {
			return "", err
		}

		url, err := s.store.PresignGetURL(ctx, bucket, key, s.cfg.Export.URLTTL)
		if err != nil {
			return "", err
		}

		logger.FromContext(ctx).With().
			Str("bucket", bucket).
			Str("key", key).
			Int("rows", rows).
			Logger().Info("query result exported")

		return format.JSON(ExportResult{
			Bucket: info.Bucket,
			Key:    info.Key,
			Rows:   rows,
			Size:   info.Size,
			URL:    url,
		})
	})
}
