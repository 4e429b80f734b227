// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"brsite/internal/remote"
)

// InstrumentClient wraps c so every call is counted in StoreOps and timed
// in StoreDuration. The wrapper reports the same durability as c.
func InstrumentClient(c remote.Client) remote.Client {
	return &instrumented{next: c}
}

type instrumented struct {
	next remote.Client
}

// Durable passes through the wrapped client's durability.
func (i *instrumented) Durable() bool {
	return remote.IsDurable(i.next)
}

// observe records one finished call. It is deferred with a pointer to the
// named error result so the final value is seen.
func observe(op string, start time.Time, err *error) {
	result := "ok"
	switch {
	case errors.Is(*err, remote.ErrNotFound):
		result = "not_found"
	case *err != nil:
		result = "error"
	}
	StoreOps.WithLabelValues(op, result).Inc()
	StoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (i *instrumented) GetDocument(ctx context.Context) (_ *remote.DocumentRow, err error) {
	defer observe("get_document", time.Now(), &err)
	return i.next.GetDocument(ctx)
}

func (i *instrumented) InsertDocument(ctx context.Context, doc json.RawMessage) (_ *remote.DocumentRow, err error) {
	defer observe("insert_document", time.Now(), &err)
	return i.next.InsertDocument(ctx, doc)
}

func (i *instrumented) ReplaceDocument(ctx context.Context, id int64, doc json.RawMessage) (err error) {
	defer observe("replace_document", time.Now(), &err)
	return i.next.ReplaceDocument(ctx, id, doc)
}

func (i *instrumented) ListRows(ctx context.Context, collection string) (_ []remote.Row, err error) {
	defer observe("list_rows", time.Now(), &err)
	return i.next.ListRows(ctx, collection)
}

func (i *instrumented) InsertRow(ctx context.Context, collection string, data json.RawMessage) (_ *remote.Row, err error) {
	defer observe("insert_row", time.Now(), &err)
	return i.next.InsertRow(ctx, collection, data)
}

func (i *instrumented) GetRow(ctx context.Context, collection string, id int64) (_ *remote.Row, err error) {
	defer observe("get_row", time.Now(), &err)
	return i.next.GetRow(ctx, collection, id)
}

func (i *instrumented) UpdateRow(ctx context.Context, collection string, id int64, data json.RawMessage) (err error) {
	defer observe("update_row", time.Now(), &err)
	return i.next.UpdateRow(ctx, collection, id, data)
}

func (i *instrumented) DeleteRow(ctx context.Context, collection string, id int64) (err error) {
	defer observe("delete_row", time.Now(), &err)
	return i.next.DeleteRow(ctx, collection, id)
}

func (i *instrumented) UploadBlob(ctx context.Context, bucket, path, contentType string, body io.Reader, size int64) (_ string, err error) {
	defer observe("upload_blob", time.Now(), &err)
	return i.next.UploadBlob(ctx, bucket, path, contentType, body, size)
}
