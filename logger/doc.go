// Package logger provides structured logging for the dictation pipeline,
// built on zerolog.
//
// Components obtain a tagged logger via WithComponent and attach structured
// fields through the Fields helper:
//
//	log := logger.NewDefault("dictate").WithComponent("coordinator")
//	log.Info("session started", logger.Fields(logger.FieldSessionID, id))
//
// Diagnostics that must never reach the end user (remote error bodies, device
// failure causes) belong here; the user-facing surface only ever sees
// errors.UserMessage.
package logger
