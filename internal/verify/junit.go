// SPDX-FileCopyrightText: 2025 The dndtiles authors <https://github.com/dndtiles>
// SPDX-License-Identifier: MIT

package verify

import (
	"encoding/xml"
	"os"
	"path/filepath"
)

type junitSuite struct {
	XMLName   xml.Name    `xml:"testsuite"`
	Name      string      `xml:"name,attr"`
	Tests     int         `xml:"tests,attr"`
	Failures  int         `xml:"failures,attr"`
	TestCases []junitCase `xml:"testcase"`
}

type junitCase struct {
	Classname string        `xml:"classname,attr"`
	Name      string        `xml:"name,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr,omitempty"`
	Details string `xml:",chardata"`
}

func writeJUnitReport(path string, results []checkResult) error {
	if path == "" {
		return nil
	}
	if err := ensureJUnitDir(path); err != nil {
		return err
	}

	suite := junitSuite{
		Name:     "dndtiles-verify",
		Tests:    len(results),
		Failures: countFailures(results),
	}
	for _, res := range results {
		jc := junitCase{
			Classname: "packs." + res.Pack,
			Name:      res.Check,
		}
		if !res.Passed {
			jc.Failure = &junitFailure{
				Message: "check failed",
				Details: res.Details,
			}
		}
		suite.TestCases = append(suite.TestCases, jc)
	}

	data, err := xml.MarshalIndent(suite, "", "  ")
	if err != nil {
		return err
	}
	data = append([]byte(xml.Header), data...)

	return os.WriteFile(path, data, 0o640)
}

func ensureJUnitDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	return os.MkdirAll(dir, 0o750)
}
