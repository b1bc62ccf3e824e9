package web

import "embed"

// StaticFS holds the embedded stylesheet and page script.
//
//go:embed static/*
var StaticFS embed.FS
