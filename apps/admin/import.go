package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/portal/core/student"
)

// importStudents replaces the stored students with the rows of a JSON file.
func (cli *commandLine) importStudents(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening import file")
	}
	defer func() { _ = f.Close() }()

	var rows []student.NewStudent
	if err = json.NewDecoder(f).Decode(&rows); err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}

	summary, err := cli.studentService(time.Time{}).Import(context.Background(), rows)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "batch %s: %d students, %d courses imported\n", summary.Batch, summary.Students, summary.Courses)
	return nil
}
