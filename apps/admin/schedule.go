package main

import (
	"context"
	"encoding/json"
	"time"
)

func (cli *commandLine) printSchedule(id string, now time.Time) error {
	sch, err := cli.studentService(now).Lookup(context.Background(), id)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(sch)
}
