// Package encoder turns a byte stream into the Markdown image embed shown to the
// user: ![](data:image/png;base64,<data>).
package encoder
