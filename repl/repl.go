// Package repl runs the interactive session: it reads lines, tokenizes,
// validates argument counts, dispatches to the engine and prints results.
// None of the store's semantics live here.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"nestdb"
)

// Database is the slice of the engine the session needs.
type Database interface {
	Set(name, value string)
	Delete(name string)
	Get(name string) (string, bool)
	Count(value string) int
	Begin()
	Rollback() error
	Commit()
	Snapshot() nestdb.Snapshot
}

type Options struct {
	// Debug enables the DUMP command; without it DUMP is unrecognized.
	Debug bool
	// DumpFormat is one of config.DumpText, DumpJSON, DumpBSON.
	DumpFormat string
	Log        *slog.Logger
}

type Session struct {
	db     Database
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	opts   Options
	id     string
	log    *slog.Logger
}

func NewSession(db Database, in io.Reader, out, errOut io.Writer, opts Options) *Session {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		db:     db,
		in:     in,
		out:    out,
		errOut: errOut,
		opts:   opts,
		id:     uuid.NewString(),
		log:    log,
	}
}

// Run processes lines until END or end of input. Malformed input is
// reported and the session continues; only a read failure is an error.
func (s *Session) Run() error {
	s.log.Info("session started", "session_id", s.id, "debug", s.opts.Debug)
	fmt.Fprintln(s.out, "Starting ...")

	sc := bufio.NewScanner(s.in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if done := s.dispatch(strings.Fields(line)); done {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	s.log.Info("session ended", "session_id", s.id)
	return nil
}

// dispatch runs one tokenized command; true means the session is over.
func (s *Session) dispatch(input []string) bool {
	var err error
	switch strings.ToUpper(input[0]) {
	case "END":
		fmt.Fprintln(s.out, "session complete, terminating ...")
		s.log.Info("session ended", "session_id", s.id)
		return true
	case "SET":
		err = s.set(input)
	case "GET":
		err = s.get(input)
	case "DELETE":
		err = s.delete(input)
	case "COUNT":
		err = s.count(input)
	case "BEGIN":
		err = s.begin(input)
	case "ROLLBACK":
		err = s.rollback(input)
	case "COMMIT":
		err = s.commit(input)
	case "DUMP":
		if s.opts.Debug {
			err = s.dump(input)
			break
		}
		fallthrough
	default:
		fmt.Fprintln(s.out, "unrecognized function: "+input[0])
		s.log.Debug("unrecognized command", "session_id", s.id, "command", input[0])
	}

	if err != nil {
		fmt.Fprintln(s.errOut, err.Error())
		s.log.Debug("rejected input", "session_id", s.id, "error", err)
	}
	return false
}

func (s *Session) set(input []string) error {
	if len(input) != 3 {
		return badInput("SET accepts 2 parameters: [name] and [value]")
	}
	s.db.Set(input[1], input[2])
	return nil
}

func (s *Session) get(input []string) error {
	if len(input) != 2 {
		return badInput("GET accepts 1 parameter: [name]")
	}
	value, ok := s.db.Get(input[1])
	if !ok {
		value = "NULL"
	}
	fmt.Fprintln(s.out, value)
	return nil
}

func (s *Session) delete(input []string) error {
	if len(input) != 2 {
		return badInput("DELETE accepts 1 parameter: [name]")
	}
	s.db.Delete(input[1])
	return nil
}

func (s *Session) count(input []string) error {
	if len(input) != 2 {
		return badInput("COUNT accepts 1 parameter: [value]")
	}
	fmt.Fprintln(s.out, s.db.Count(input[1]))
	return nil
}

func (s *Session) begin(input []string) error {
	if len(input) != 1 {
		return badInput("BEGIN does not accept any parameters")
	}
	s.db.Begin()
	return nil
}

func (s *Session) rollback(input []string) error {
	if len(input) != 1 {
		return badInput("ROLLBACK does not accept any parameters")
	}
	if err := s.db.Rollback(); err != nil {
		fmt.Fprintln(s.out, "TRANSACTION NOT FOUND")
	}
	return nil
}

func (s *Session) commit(input []string) error {
	if len(input) != 1 {
		return badInput("COMMIT does not accept any parameters")
	}
	s.db.Commit()
	return nil
}
