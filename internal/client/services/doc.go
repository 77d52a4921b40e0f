// Package services contains the application flows the Fusion client runs on
// top of the API client: role-specific registration, session inspection and
// administrator user/profile management. Input validation happens here, so
// malformed forms never reach the backend.
package services
