// Package logging provides an explicitly constructed logging context built on
// rs/zerolog, writing date-stamped files through lumberjack.
//
// A Service is created once by the process entry point, handed to the code
// that logs, and closed on exit. There is no package-level logger.
//
// Records are written one per line as
//
//	2026-10-18 09:30:00,000 - INFO Starting main program
//
// to <WorkingDir>/<RelLogFileDir>/log_<YYYY-MM-DD>.log. The sink moves to a
// new file when the calendar date changes.
//
// Typical usage
//
//	cfg, err := logging.LoadConfig()
//	if err != nil { return err }
//	svc := &logging.Service{WorkingDir: wd, LoggingConfig: &cfg}
//	if err := svc.Initialize(); err != nil { return err }
//	defer svc.Close()
//
//	log := svc.Named("main")
//	log.InfoWith().Msg("Starting main program")
//	log.ErrorWith().Err(err).Msg("Error occured")
package logging
