// Copyright 2024 Institute of the Czech National Corpus,
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

// Package migrations embeds SQL migration files of the annotation archive.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
