package shell

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ValentinKolb/kvql/lib/dispatch"
	"github.com/ValentinKolb/kvql/rpc/common"
	"github.com/ValentinKolb/kvql/rpc/serializer"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("cli")

// maxLineBytes is the longest command line the shell accepts
const maxLineBytes = 1 << 20

// REPL reads command lines, executes them and prints the results.
type REPL struct {
	Executor   *dispatch.Executor
	Serializer serializer.IResultSerializer
	Prompt     string
}

// Run processes lines from in until EOF, "exit" or "quit". Query failures
// are printed and do not stop the loop.
func (r *REPL) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	for {
		if r.Prompt != "" {
			_, _ = io.WriteString(out, r.Prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		if err := r.execute(ctx, line, out); err != nil {
			return err
		}
	}
}

// execute runs a single line. Only failures to write the output are returned.
func (r *REPL) execute(ctx context.Context, line string, out io.Writer) error {
	res, err := r.Executor.Execute(ctx, line)
	if err != nil {
		Logger.Debugf("query %q failed: %v", line, err)
		_, werr := fmt.Fprintf(out, "(error) %s: %v\n", common.ClassifyError(err), err)
		return werr
	}

	data, err := r.Serializer.Serialize(res)
	if err != nil {
		_, werr := fmt.Fprintf(out, "(error) %s: %v\n", common.ErrKInternal, err)
		return werr
	}
	_, err = out.Write(append(bytes.TrimRight(data, "\n"), '\n'))
	return err
}
