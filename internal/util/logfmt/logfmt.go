// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package logfmt adds additional details to log messages with errors.
package logfmt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/dbname/internal/util/ident"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	detailKey     = "detail"
	identifierKey = "identifier"
	sqlKey        = "sql"
)

// Wrap adds a workaround for there being no support for automatically
// printing the details of an error to expose the stack trace. This
// formatter adds an extra detail field to log entries that contain an
// ErrorKey. If the error to be formatted is an mssql.Error, its
// subfields will also be added to the entry. If the error is caused by
// an unparseable name, the raw input is added as well.
//
// https://github.com/sirupsen/logrus/issues/895
func Wrap(f log.Formatter) log.Formatter {
	return &detailer{f}
}

type detailer struct {
	log.Formatter
}

// sqlDetail represents an mssql.Error in a way that plays nicely with
// the various formatters.
type sqlDetail struct {
	Number     int32  `json:"number,omitempty"`
	State      uint8  `json:"state,omitempty"`
	Class      uint8  `json:"class,omitempty"`
	Message    string `json:"message,omitempty"`
	ServerName string `json:"serverName,omitempty"`
	ProcName   string `json:"procName,omitempty"`
	LineNo     int32  `json:"lineNo,omitempty"`
}

func (s *sqlDetail) String() string {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetIndent("", " ")
	_ = enc.Encode(s)
	return sb.String()
}

// Format implements log.Formatter.
func (d *detailer) Format(e *log.Entry) ([]byte, error) {
	if e.Data != nil {
		if err, ok := e.Data[log.ErrorKey].(error); ok {
			// Don't overwrite anywhere there may already be a detail key.
			if _, existing := e.Data[detailKey]; !existing {
				e.Data[detailKey] = fmt.Sprintf("%+v", err)
			}

			var msErr mssql.Error
			if errors.As(err, &msErr) {
				e.Data[sqlKey] = &sqlDetail{
					Number:     msErr.Number,
					State:      msErr.State,
					Class:      msErr.Class,
					Message:    msErr.Message,
					ServerName: msErr.ServerName,
					ProcName:   msErr.ProcName,
					LineNo:     msErr.LineNo,
				}
			}

			if invalid := (*ident.InvalidNameError)(nil); errors.As(err, &invalid) {
				if _, existing := e.Data[identifierKey]; !existing {
					e.Data[identifierKey] = invalid.Raw
				}
			}
		}
	}
	return d.Formatter.Format(e)
}
