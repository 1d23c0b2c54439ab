// Package service exposes the ingestion core to boundary collaborators.
// IngestService is the handle surface a binding layer builds on: push raw
// bytes, pop ready buffers as descriptors, query a fixed-layout stats
// snapshot. The core performs no device-memory transfers itself; CopyOut
// and CopyIn are the bound-checked helpers a transfer boundary uses with
// the buffer descriptor as source or destination.
package service
