package main

import "github.com/go-faster/errors"

func as(err error, target any) bool { return errors.As(err, target) }
