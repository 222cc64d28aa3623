package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/portal/core"
	"github.com/trezcool/portal/core/schedule"
	"github.com/trezcool/portal/core/student"
	inmemdb "github.com/trezcool/portal/storage/database/inmem"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	t.Helper()
	conf := core.NewConfig()
	conf.Admin.Username = "admin"

	out := new(bytes.Buffer)
	return &commandLine{
		conf:     conf,
		students: inmemdb.NewStudentRepository(inmemdb.Open()),
		validate: core.NewValidator(core.NewTranslator()),
		db:       new(sql.DB),
		out:      out,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func checkErr(t *testing.T, tt cliTest, err error) {
	t.Helper()
	switch {
	case tt.wantErr != nil:
		assert.Equal(t, tt.wantErr, err)
	case tt.wantErrStr != "":
		if assert.Error(t, err) {
			assert.Equal(t, tt.wantErrStr, err.Error())
		}
	default:
		assert.NoError(t, err)
	}
}

func Test_commandLine_run(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "import: no file", args: []string{"import"}, wantErr: errHelp},
		{name: "import: unknown flag", args: []string{"import", "-lol"}, wantErr: errHelp},
		{name: "schedule: no id", args: []string{"schedule"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			checkErr(t, tt, cli.run(args))
			assert.NotEmpty(t, out.String(), "usage should be printed")
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	defer func(orig func(string, *sql.DB, fs.FS, string, ...string) error) { gooseRunFunc = orig }(gooseRunFunc)
	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		if _, err := fs.Stat(fsys, dir); err != nil {
			return err
		}
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "course", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			checkErr(t, tt, cli.run(args))
		})
	}

	t.Run("without postgres", func(t *testing.T) {
		cli.db = nil
		cli.conf.Database.Engine = "memory"
		err := cli.run([]string{"admin", "migrate", "up"})
		if assert.Error(t, err) {
			assert.Equal(t, `migrations need the postgres engine (got "memory")`, err.Error())
		}
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_commandLine_importStudents(t *testing.T) {
	cli, out := setup(t)

	rows, err := json.Marshal([]student.NewStudent{
		{ID: "1.020.304", Name: "Ana Pérez", Courses: []schedule.RawCourse{{Subject: "Cálculo", WeeklyRaw: []string{"sábado / 07 / marzo-7 a 9- ID 123456789"}}}},
		{ID: "5566", Name: "Luis Gómez"},
	})
	require.NoError(t, err)
	valid := writeFile(t, "students.json", string(rows))
	invalidRow := writeFile(t, "invalid.json", `[{"id": "abc", "nombre": "Ana"}]`)
	broken := writeFile(t, "broken.json", `{"id"`)

	tests := []cliTest{
		{name: "file not found", args: []string{"import", "-file", filepath.Join(t.TempDir(), "lol.json")}, extra: "opening import file"},
		{name: "broken json", args: []string{"import", "-file", broken}, extra: "decoding"},
		{name: "invalid row", args: []string{"import", "-file", invalidRow}, extra: "validating row 1"},
		{name: "valid", args: []string{"import", "-file", valid}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			if want, ok := tt.extra.(string); ok {
				if assert.Error(t, err) {
					assert.Contains(t, err.Error(), want)
				}
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), "2 students, 1 courses imported")

			st, err := cli.students.GetByID(context.Background(), "1020304")
			require.NoError(t, err)
			assert.Equal(t, "Ana Pérez", st.Name)
		})
	}
}

func Test_commandLine_printSchedule(t *testing.T) {
	cli, out := setup(t)

	_, err := cli.studentService(time.Time{}).Import(context.Background(), []student.NewStudent{{
		ID:      "1020304",
		Name:    "Ana Pérez",
		Courses: []schedule.RawCourse{{Subject: "Cálculo", WeeklyRaw: []string{"sábado / 07 / marzo / 2026-7 a 9- ID 123456789"}}},
	}})
	require.NoError(t, err)

	tests := []cliTest{
		{name: "invalid now", args: []string{"schedule", "-id", "1020304", "-now", "lol"}, extra: "invalid -now"},
		{name: "unknown", args: []string{"schedule", "-id", "999"}, wantErr: student.ErrNotFound},
		{name: "present", args: []string{"schedule", "-id", "1.020.304", "-now", "2026-03-07T08:00:00-05:00"}, extra: schedule.StatusPresent},
		{name: "past", args: []string{"schedule", "-id", "1020304", "-now", "2026-03-08T08:00:00-05:00"}, extra: schedule.StatusPast},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			switch want := tt.extra.(type) {
			case string:
				if assert.Error(t, err) {
					assert.Contains(t, err.Error(), want)
				}
			case schedule.Status:
				require.NoError(t, err)
				var sch student.Schedule
				require.NoError(t, json.Unmarshal(out.Bytes(), &sch))
				require.Len(t, sch.Courses, 1)
				require.Len(t, sch.Courses[0].Sessions, 1)
				assert.Equal(t, want, sch.Courses[0].Sessions[0].Status)
				assert.Equal(t, "https://zoom.us/j/123456789", sch.Courses[0].Sessions[0].MeetingLink)
			default:
				checkErr(t, tt, err)
			}
		})
	}
}

func Test_commandLine_hashPassword(t *testing.T) {
	cli, out := setup(t)

	defer func(orig func(int) ([]byte, error)) { readPasswordFunc = orig }(readPasswordFunc)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no password", args: []string{"hashpassword"}, wantErr: errHelp},
		{name: "too short", args: []string{"hashpassword"}, extra: extra{pwd: "C0rto!"}, wantErr: errPasswordTooShort},
		{name: "numeric", args: []string{"hashpassword"}, extra: extra{pwd: "12345678901"}, wantErr: errPasswordNumeric},
		{name: "complexity", args: []string{"hashpassword"}, extra: extra{pwd: "horarioseguro"}, wantErr: errPasswordComplexity},
		{name: "contains username", args: []string{"hashpassword"}, extra: extra{pwd: "ADMIN-2026-x"}, wantErr: errPasswordTooSimilar},
		{name: "similar to username", args: []string{"hashpassword", "-username", "coordinacion"}, extra: extra{pwd: "Coordinacion3s!"}, wantErr: errPasswordTooSimilar},
		{name: "valid", args: []string{"hashpassword"}, extra: extra{pwd: "Horario-Seguro!9"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			readPasswordFunc = func(fd int) ([]byte, error) {
				if extra, ok := tt.extra.(extra); ok {
					return []byte(extra.pwd), nil
				}
				return nil, nil
			}
			out.Reset()

			err := cli.run(args)
			checkErr(t, tt, err)
			if err == nil {
				lines := strings.Split(strings.TrimSpace(out.String()), "\n")
				hash := lines[len(lines)-1]
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(tt.extra.(extra).pwd)))
			}
		})
	}
}
