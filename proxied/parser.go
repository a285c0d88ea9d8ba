// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of CLAUSEFEAT.
//
//  CLAUSEFEAT is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  CLAUSEFEAT is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with CLAUSEFEAT.  If not, see <https://www.gnu.org/licenses/>.

package proxied

import (
	"clausefeat/collab"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

const (
	maxParseTextLength = 10000
)

type textProcessor interface {
	Process(ctx context.Context, text string) (string, error)
}

type Actions struct {
	parser textProcessor
}

// RemoteParser godoc
// @Summary      Parse
// @Description  Pass a text to the syntactic parser and return its raw CoNLL-U output.
// @Accept       plain
// @Produce      plain
// @Param        text body string true "text to parse"
// @Success      200 {string} string
// @Router       /parse [post]
func (a *Actions) RemoteParser(ctx *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxParseTextLength+1))
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		uniresp.RespondWithErrorJSON(ctx, errors.New("empty text"), http.StatusBadRequest)
		return
	}
	if len(body) > maxParseTextLength {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("text too long (max. %d bytes)", maxParseTextLength),
			http.StatusRequestEntityTooLarge,
		)
		return
	}
	ans, err := a.parser.Process(ctx.Request.Context(), text)
	var srvErr collab.ServiceError
	if errors.As(err, &srvErr) {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadGateway)
		return

	} else if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusServiceUnavailable)
		return
	}
	ctx.Header("content-type", "text/plain; charset=utf-8")
	ctx.Writer.WriteString(ans)
}

func NewActions(parser textProcessor) *Actions {
	return &Actions{
		parser: parser,
	}
}
