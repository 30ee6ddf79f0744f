// This file is part of basic8 - https://github.com/retrobasic/basic8
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

package vm

import "fmt"

// ErrorKind is the closed set of interpreter error kinds (spec.md §7).
type ErrorKind int

// Error kinds.
const (
	ErrSyntax ErrorKind = iota
	ErrTypeMismatch
	ErrUndefinedStatement
	ErrUndefinedFunction
	ErrReturnWithoutGosub
	ErrNextWithoutFor
	ErrOutOfData
	ErrBadSubscript
	ErrRedimensionedArray
	ErrDivisionByZero
	ErrIllegalQuantity
	ErrInputTimeout
	ErrCantContinue
	ErrCantResume
	ErrStackOverflow
)

var errorNames = map[ErrorKind]string{
	ErrSyntax:             "Syntax Error",
	ErrTypeMismatch:       "Type Mismatch",
	ErrUndefinedStatement: "Undefined Statement",
	ErrUndefinedFunction:  "Undefined Function",
	ErrReturnWithoutGosub: "Return Without Gosub",
	ErrNextWithoutFor:     "Next Without For",
	ErrOutOfData:          "Out Of Data",
	ErrBadSubscript:       "Bad Subscript",
	ErrRedimensionedArray: "Redimensioned Array",
	ErrDivisionByZero:     "Division By Zero",
	ErrIllegalQuantity:    "Illegal Quantity",
	ErrInputTimeout:       "Input Timeout",
	ErrCantContinue:       "Can't Continue",
	ErrCantResume:         "Can't Resume",
	ErrStackOverflow:      "Stack Overflow",
}

func (k ErrorKind) String() string {
	if s, ok := errorNames[k]; ok {
		return s
	}
	return "Unknown Error"
}

// Code returns the dialect's numeric error code for PEEK(222), a stable
// small integer keyed to declaration order.
func (k ErrorKind) Code() byte { return byte(k) }

// Error is a typed interpreter failure. newErr leaves Line at zero; the run
// loop takes the failing line from its program counter when it formats the
// two-line diagnostic of spec.md §7 or latches the error for ONERR.
type Error struct {
	Kind    ErrorKind
	Line    int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return e.Kind.String()
}

// newErr builds an *Error for the given kind with an optional formatted
// detail message.
func newErr(kind ErrorKind, format string, args ...interface{}) *Error {
	msg := ""
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Message: msg}
}
