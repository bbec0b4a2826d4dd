package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/foiadesk/foiadesk/internal/model"
)

// VideoFilter controls filtering and pagination for the video pipeline.
type VideoFilter struct {
	Status   model.VideoStatus
	Editor   string
	Page     int
	PageSize int
}

func (f VideoFilter) values() url.Values {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.Editor != "" {
		v.Set("editor", f.Editor)
	}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(f.PageSize))
	}
	return v
}

// ListVideos retrieves a page of pipeline videos.
func (c *Client) ListVideos(
	ctx context.Context, filter VideoFilter,
) (Page[model.Video], error) {
	raw, err := c.GetRaw(ctx, "/videos", filter.values())
	if err != nil {
		return Page[model.Video]{}, err
	}
	return DecodePage[model.Video](raw)
}

// GetVideo retrieves a single video by ID.
func (c *Client) GetVideo(ctx context.Context, id string) (*model.Video, error) {
	var video model.Video
	if err := c.Get(ctx, "/videos/"+url.PathEscape(id), nil, &video); err != nil {
		return nil, fmt.Errorf("fetching video %s: %w", id, err)
	}
	return &video, nil
}

// UpdateVideoStatus moves a video to a new pipeline stage.
func (c *Client) UpdateVideoStatus(
	ctx context.Context, id string, status model.VideoStatus,
) (*model.Video, error) {
	body := struct {
		Status model.VideoStatus `json:"status"`
	}{Status: status}

	var updated model.Video
	path := "/videos/" + url.PathEscape(id) + "/status"
	if err := c.Post(ctx, path, body, &updated); err != nil {
		return nil, fmt.Errorf("updating video %s status: %w", id, err)
	}
	return &updated, nil
}

// SchedulePublish schedules a reviewed video for publication.
func (c *Client) SchedulePublish(
	ctx context.Context, id string, at time.Time,
) (*model.Video, error) {
	body := struct {
		PublishAt time.Time `json:"publish_at"`
	}{PublishAt: at}

	var scheduled model.Video
	path := "/videos/" + url.PathEscape(id) + "/schedule"
	if err := c.Post(ctx, path, body, &scheduled); err != nil {
		return nil, fmt.Errorf("scheduling video %s: %w", id, err)
	}
	return &scheduled, nil
}
