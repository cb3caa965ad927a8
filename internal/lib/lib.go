// Package lib groups integrations that sit beside the request path:
// background job processing on Redis/asynq (lib/job) and transactional
// email through Resend (lib/email).
package lib
