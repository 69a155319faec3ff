package discovery

import (
	"context"
	"fmt"
	"time"
)

// CheckIndexStatus fetches the document with the given full resource name and
// reports whether the service has indexed it yet. If the document carries an
// index timestamp, that timestamp is returned with indexed=true; a document
// that exists but has not been indexed yet returns a zero time and
// indexed=false.
//
// A failure of the status check itself is returned as an error so callers
// can tell "not yet indexed" apart from "could not check".
func (c *Client) CheckIndexStatus(ctx context.Context, documentName string) (indexTime time.Time, indexed bool, err error) {
	doc, err := c.GetDocument(ctx, documentName)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("discovery: check index status: %w", err)
	}

	ts := doc.GetIndexTime()
	if ts == nil {
		return time.Time{}, false, nil
	}
	return ts.AsTime(), true, nil
}
