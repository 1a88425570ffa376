package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/collisiondb/collisiondb/internal/schema"
	"github.com/collisiondb/collisiondb/internal/types"
	"github.com/collisiondb/collisiondb/pkg/client"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		addr        string
		where       []string
		ignore_case bool
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "collision-query",
		Short: "Query a CollisionDB server",
		Example: `  collision-query -w BOROUGH=BROOKLYN -w ZIP_CODE=11208
  collision-query -i -w 'ON_STREET_NAME~avenue' -w 'NUMBER_OF_PERSONS_KILLED>0'
  collision-query -w '!BOROUGH=QUEENS' -w 'OFF_STREET_NAME?'`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			conditions := make([]client.Condition, 0, len(where))
			for _, w := range where {
				c, err := parseCondition(w)
				if err != nil {
					return err
				}
				if ignore_case {
					if f, _ := schema.Lookup(string(c.Field)); f.Kind().IsTextual() {
						c = c.CaseInsensitive()
					}
				}
				conditions = append(conditions, c)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c, err := client.Dial(ctx, addr)
			if err != nil {
				return err
			}
			defer c.Close()

			found, err := c.GetCollisions(ctx, conditions...)
			if err != nil {
				return err
			}
			printCollisions(cmd.OutOrStdout(), found)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&addr, "addr", "a", "ws://localhost:50051", "server address")
	flags.StringArrayVarP(&where, "where", "w", nil, "condition FIELD<op>VALUE; ops: = != > < ~ (contains), FIELD? (has value), ! prefix negates")
	flags.BoolVarP(&ignore_case, "ignore-case", "i", false, "compare text case insensitively")
	flags.DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	return cmd
}

var operator_tokens = []struct {
	token string
	op    client.Operator
}{
	// two-character tokens first
	{"!=", client.NotEquals},
	{"=", client.Equals},
	{">", client.GreaterThan},
	{"<", client.LessThan},
	{"~", client.Contains},
}

// parseCondition reads FIELD<op>VALUE. The value is typed from the field's
// kind so ZIP_CODE=11208 sends an integer.
func parseCondition(s string) (client.Condition, error) {
	negate := strings.HasPrefix(s, "!")
	s = strings.TrimPrefix(s, "!")

	var c client.Condition
	if name, ok := strings.CutSuffix(s, "?"); ok {
		field, err := lookupField(name)
		if err != nil {
			return c, err
		}
		c = client.Where(client.Field(field.String()), client.HasValue, nil)
	} else {
		idx, token := -1, ""
		var op client.Operator
		for _, t := range operator_tokens {
			if i := strings.Index(s, t.token); i > 0 && (idx == -1 || i < idx) {
				idx, token, op = i, t.token, t.op
			}
		}
		if idx == -1 {
			return c, fmt.Errorf("Invalid condition %q", s)
		}

		field, err := lookupField(s[:idx])
		if err != nil {
			return c, err
		}
		value, err := typedValue(field, s[idx+len(token):])
		if err != nil {
			return c, err
		}
		c = client.Where(client.Field(field.String()), op, value)
	}

	if negate {
		c = c.Not()
	}
	return c, nil
}

func lookupField(name string) (schema.Field, error) {
	field, ok := schema.Lookup(strings.ToUpper(strings.TrimSpace(name)))
	if !ok {
		return field, fmt.Errorf("Unknown field %q", name)
	}
	return field, nil
}

func typedValue(field schema.Field, raw string) (any, error) {
	switch field.Kind() {
	case types.FieldKindInteger:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer: %w", field, err)
		}
		return v, nil
	case types.FieldKindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s expects a float: %w", field, err)
		}
		return v, nil
	default:
		return raw, nil
	}
}

func printCollisions(w io.Writer, found []client.Collision) {
	fmt.Fprintln(w, "Collision size:", len(found))
	for _, c := range found {
		borough, zip := "-", "-"
		if c.Borough != nil {
			borough = *c.Borough
		}
		if c.ZipCode != nil {
			zip = strconv.FormatInt(*c.ZipCode, 10)
		}
		fmt.Fprintln(w, "Name:", borough, "Zip_code:", zip)
	}
}
