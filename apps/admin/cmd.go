package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/trezcool/portal/core"
	"github.com/trezcool/portal/core/schedule"
	"github.com/trezcool/portal/core/student"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf     *core.Config
	students student.Repository
	validate *validator.Validate
	opts     schedule.Options
	db       *sql.DB // postgres only
	out      io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  import -file FILE.json - replace every student with the rows of FILE.json")
	fmt.Fprintln(cli.out, "  schedule -id DOC [-now RFC3339] - print the schedule of a student")
	fmt.Fprintln(cli.out, "  hashpassword [-username USERNAME] - print the bcrypt hash to set as ADMIN_PASSWORDHASH")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose migration command (postgres)")
}

// studentService returns a service whose clock is frozen at `now` when set.
func (cli *commandLine) studentService(now time.Time) *student.Service {
	clock := core.SystemClock(cli.conf.Location())
	if !now.IsZero() {
		clock = core.FixedClock(now)
	}
	return student.NewService(cli.students, cli.validate, clock, cli.opts)
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	importCmd := flag.NewFlagSet("import", flag.ContinueOnError)
	importFile := importCmd.String("file", "", "JSON file holding an array of {id, nombre, cursos}.")

	scheduleCmd := flag.NewFlagSet("schedule", flag.ContinueOnError)
	scheduleID := scheduleCmd.String("id", "", "The student's document number.")
	scheduleNow := scheduleCmd.String("now", "", "Evaluate the schedule at this instant (RFC3339) instead of now.")

	hashPasswordCmd := flag.NewFlagSet("hashpassword", flag.ContinueOnError)
	hashPasswordUname := hashPasswordCmd.String("username", cli.conf.Admin.Username, "The admin username. The password will be prompted next.")

	for _, cmd := range []*flag.FlagSet{importCmd, scheduleCmd, hashPasswordCmd} {
		cmd.SetOutput(cli.out)
	}

	switch args[1] {
	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importStudents(*importFile)

	case "schedule":
		if err := scheduleCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *scheduleID == "" {
			scheduleCmd.Usage()
			return errHelp
		}
		var now time.Time
		if *scheduleNow != "" {
			var err error
			if now, err = time.Parse(time.RFC3339, *scheduleNow); err != nil {
				return fmt.Errorf("invalid -now: %w", err)
			}
		}
		return cli.printSchedule(*scheduleID, now)

	case "hashpassword":
		if err := hashPasswordCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			hashPasswordCmd.Usage()
			return errHelp
		}
		return cli.hashPassword(*hashPasswordUname, string(pwd))

	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	default:
		cli.printUsage()
		return errHelp
	}
}
