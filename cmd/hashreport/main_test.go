package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunNoArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"hashreport"}, &stdout, &stderr)
	if code != exitCodeUsage {
		t.Fatalf("wanted exit code %d; found %d", exitCodeUsage, code)
	}
	if !strings.Contains(stderr.String(), "USAGE: hashreport") {
		t.Fatalf("wanted usage on stderr; found:\n%s", stderr.String())
	}
}

func TestRunEndToEnd(t *testing.T) {
	isolateConfig(t)

	inputs := t.TempDir()
	sourceA := filepath.Join(inputs, "a.csv")
	sourceB := filepath.Join(inputs, "b.csv")
	writeFile(t, sourceA, "Size-bytes,Hash,File\n100,AAA,/x/1.txt\n200,BBB,/x/2.txt\n")
	writeFile(t, sourceB, "Size-bytes,Hash,File\n100,aaa,/y/1.txt\n")

	output := t.TempDir()
	logs := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run(
		context.Background(),
		[]string{
			"hashreport",
			"--" + flagOutputDir, output,
			"--" + flagLogDir, logs,
			"--" + flagSorted,
			sourceA,
			sourceB,
		},
		&stdout,
		&stderr,
	)
	if code != exitCodeOK {
		t.Fatalf("wanted exit code %d; found %d\n%s", exitCodeOK, code, stderr.String())
	}

	reports := globOne(t, filepath.Join(output, "HASH-REPORT_DUPLICATES__*.tsv"))
	data, err := os.ReadFile(reports)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wanted := "HASH\tPATH\tBYTES\n" +
		"aaa\t/x/1.txt\t100\n" +
		"aaa\t/y/1.txt\t100\n"
	if string(data) != wanted {
		t.Fatalf("wanted duplicates `%q`; found `%q`", wanted, data)
	}

	// the log file and both reports share one timestamp
	logFile := globOne(t, filepath.Join(logs, "*.log"))
	timestamp := strings.TrimSuffix(filepath.Base(logFile), ".log")
	globOne(t, filepath.Join(output, "HASH-REPORT_ORPHANS__"+timestamp+".tsv"))
	globOne(t, filepath.Join(output, "HASH-REPORT_DUPLICATES__"+timestamp+".tsv"))

	if !strings.Contains(stdout.String(), "logging to "+logFile) {
		t.Fatalf("wanted log file announced on stdout; found:\n%s", stdout.String())
	}

	logData, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, entry := range []string{"parsed record", "program has completed"} {
		if !strings.Contains(string(logData), entry) {
			t.Fatalf("wanted `%s` in log file; found:\n%s", entry, logData)
		}
	}
}

func TestRunMalformedInput(t *testing.T) {
	isolateConfig(t)

	source := filepath.Join(t.TempDir(), "bad.csv")
	writeFile(t, source, "Size,Hash,File\n100,AAA,/x/1.txt\n")

	output := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run(
		context.Background(),
		[]string{
			"hashreport",
			"--" + flagOutputDir, output,
			"--" + flagLogDir, t.TempDir(),
			source,
		},
		&stdout,
		&stderr,
	)
	if code != exitCodeError {
		t.Fatalf("wanted exit code %d; found %d", exitCodeError, code)
	}
	if !strings.Contains(stderr.String(), "malformed input") {
		t.Fatalf("wanted error on stderr; found:\n%s", stderr.String())
	}

	matches, err := filepath.Glob(filepath.Join(output, "*.tsv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("wanted no reports; found %v", matches)
	}
}

func TestRunInputNamedLikeCommand(t *testing.T) {
	for _, name := range []string{"help", "h"} {
		t.Run(name, func(t *testing.T) {
			isolateConfig(t)
			chdir(t, t.TempDir())
			writeFile(t, name, "Size-bytes,Hash,File\n100,AAA,/x/1.txt\n")

			output := t.TempDir()
			var stdout, stderr bytes.Buffer
			code := run(
				context.Background(),
				[]string{
					"hashreport",
					"--" + flagOutputDir, output,
					"--" + flagLogDir, t.TempDir(),
					name,
				},
				&stdout,
				&stderr,
			)
			if code != exitCodeOK {
				t.Fatalf(
					"wanted exit code %d; found %d\n%s",
					exitCodeOK,
					code,
					stderr.String(),
				)
			}

			orphans := globOne(
				t,
				filepath.Join(output, "HASH-REPORT_ORPHANS__*.tsv"),
			)
			globOne(t, filepath.Join(output, "HASH-REPORT_DUPLICATES__*.tsv"))
			data, err := os.ReadFile(orphans)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if wanted := "HASH\tPATH\tBYTES\naaa\t/x/1.txt\t100\n"; string(data) != wanted {
				t.Fatalf("wanted orphans `%q`; found `%q`", wanted, data)
			}
		})
	}
}

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv(envVarPrefix+"_CONFIG_FILE", filepath.Join(t.TempDir(), "none.yaml"))
}

func chdir(t *testing.T, directory string) {
	t.Helper()
	previous, err := os.Getwd()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.Chdir(directory); err != nil {
		t.Fatalf("unexpected error changing directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(previous); err != nil {
			t.Fatalf("unexpected error restoring directory: %v", err)
		}
	})
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("unexpected error writing `%s`: %v", path, err)
	}
}

func globOne(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("unexpected error globbing `%s`: %v", pattern, err)
	}
	if len(matches) != 1 {
		t.Fatalf("wanted one match for `%s`; found %v", pattern, matches)
	}
	return matches[0]
}
