package conn_test

import (
	"errors"

	. "github.com/collisiondb/collisiondb/internal/conn"
)

func errorOf(res Response) error { return errors.New(res.Message) }
