// Package storage loads attachment content from the local file system or S3-compatible
// object storage.
//
// A [Source] resolves a location string into a [File] holding the raw bytes, the display
// filename and a detected MIME type. [LocalFS] reads plain paths, [S3Storage] reads
// "s3://bucket/key" locations, and [Mux] routes a location to the right source by scheme.
//
// # Usage
//
//	s3, err := storage.New(storage.Config{
//		AccessKey: os.Getenv("S3_ACCESS_KEY"),
//		SecretKey: os.Getenv("S3_SECRET_KEY"),
//		Endpoint:  "http://localhost:9000",
//		PathStyle: true,
//	})
//	if err != nil {
//		return err
//	}
//
//	src := storage.NewMux(storage.LocalFS{}, storage.WithScheme("s3", s3))
//
//	f, err := src.Open(ctx, "s3://reports/2026/10/daily.csv")
//	if errors.Is(err, storage.ErrNotFound) {
//		// nothing to attach
//	}
//
// # MIME Detection
//
// [DetectMIME] sniffs the first 512 bytes with http.DetectContentType and falls back to the
// file extension when sniffing only yields a generic type.
//
// # Errors
//
//   - ErrInvalidConfig: missing S3 credentials
//   - ErrInvalidLocation: empty or malformed location
//   - ErrUnsupportedScheme: no source registered for the location scheme
//   - ErrNotFound: file or object does not exist
//   - ErrAccessDenied: permission denied
//   - ErrIsDirectory: location points to a directory
//   - ErrFileTooLarge: content exceeds the configured size limit
//   - ErrUnreadable: any other read failure
package storage
