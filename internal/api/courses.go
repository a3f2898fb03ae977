package api

import (
	"context"
	"net/url"

	"lurnix/internal/course"
)

// GetCourseAssets fetches the full course tree from the content
// service. The tree is read-only; the home screen fetches it once per
// mount.
func (c *Client) GetCourseAssets(ctx context.Context, courseID string) (*course.Course, error) {
	var out course.Course
	err := c.get(ctx, c.contentBase, "/course/"+url.PathEscape(courseID)+"/assets", nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
