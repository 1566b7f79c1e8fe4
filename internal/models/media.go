package models

// SelectedMedia is an uploaded recording held in memory for the duration of
// one submission. It is never written to disk and is dropped once the
// pipeline that created it finishes.
type SelectedMedia struct {
	Data        []byte
	MIMEType    string
	Size        int64
	DisplayName string
}

// EncodedMedia is the transport-safe form of a recording: base64 payload
// plus its MIME type, with no data-URL prefix.
type EncodedMedia struct {
	MIMEType string
	Data     string
}
