package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/engine"
	"github.com/rushteam/dinekit/rerank"
)

// recommender 是命令行用到的控制器能力。
type recommender interface {
	Keyword(ctx context.Context, req engine.KeywordRequest) (*core.Result, error)
	Refine(ctx context.Context, crit core.Criteria, personalized, originalScore bool) (*core.Result, error)
	Collaborative(ctx context.Context, userID string) (*core.Result, error)
	Content(ctx context.Context, userID string) (*core.Result, error)
	Display(ctx context.Context, n int) (*rerank.Page, error)
}

type shell struct {
	rec          recommender
	in           *bufio.Scanner
	out          io.Writer
	displayCount int
	eof          bool
}

func newShell(rec recommender, in io.Reader, out io.Writer, displayCount int) *shell {
	if displayCount <= 0 {
		displayCount = core.DefaultDisplayCount
	}
	return &shell{
		rec:          rec,
		in:           bufio.NewScanner(in),
		out:          out,
		displayCount: displayCount,
	}
}

func (s *shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// ask 打印提示并读取一行；输入结束后返回空串。
func (s *shell) ask(prompt string) string {
	fmt.Fprintln(s.out, prompt)
	if !s.in.Scan() {
		s.eof = true
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

func yes(answer string) bool {
	return strings.HasPrefix(strings.ToLower(answer), "y")
}

// Run 执行交互循环，直到用户退出、输入结束或 ctx 取消。
func (s *shell) Run(ctx context.Context) error {
	for !s.eof {
		if err := ctx.Err(); err != nil {
			return err
		}

		personalized := yes(s.ask("Want a customized recommendation based on your user history? yes/no"))
		var (
			res *core.Result
			err error
		)
		if personalized {
			res, err = s.personalized(ctx)
		} else {
			res, err = s.keyword(ctx)
		}
		if err != nil {
			s.report(err)
		}
		if s.eof {
			break
		}

		if res.Len() > 0 {
			s.show(ctx, s.displayCount)
			s.refine(ctx, personalized)
		}

		r := strings.ToLower(s.ask("All done! Enter q to quit, or c to start another recommendation."))
		if r == "" || strings.HasPrefix(r, "q") {
			break
		}
	}
	s.printf("Enjoy your recommendations! See you next time!\n")
	return nil
}

func (s *shell) personalized(ctx context.Context) (*core.Result, error) {
	userID := s.ask("Please enter your user id (22 characters):")
	mode := s.ask("Which personalized recommendation would you prefer?\n" +
		"1. Something new based on people like you;\n2. Something similar to your favorite restaurants;\nPlease enter 1 or 2")
	switch mode {
	case "1":
		res, err := s.rec.Collaborative(ctx, userID)
		if err == nil && res.Notice != "" {
			s.printf("%s\n", res.Notice)
		}
		return res, err
	case "2":
		return s.rec.Content(ctx, userID)
	}
	if !s.eof {
		s.printf("Invalid choice %q, let's give it another try.\n", mode)
	}
	return nil, nil
}

func (s *shell) keyword(ctx context.Context) (*core.Result, error) {
	crit := s.readKeywords()
	if s.eof {
		return nil, nil
	}
	r := s.ask("Rank by 'smart' ratings? They adjust the average star rating by the number of ratings.\n" +
		"Enter no to use the original ratings, or any other key to continue.")
	return s.rec.Keyword(ctx, engine.KeywordRequest{
		Criteria:      crit,
		OriginalScore: strings.HasPrefix(strings.ToLower(r), "n"),
	})
}

func (s *shell) refine(ctx context.Context, personalized bool) {
	r := s.ask("Enter a number to display more or fewer results, or any other key to skip:")
	if n, err := strconv.Atoi(r); err == nil && n > 0 {
		s.show(ctx, n)
	}

	if !yes(s.ask("Further filter the results by keywords? yes to continue, any other key to skip:")) {
		return
	}
	crit := s.readKeywords()
	if _, err := s.rec.Refine(ctx, crit, personalized, false); err != nil {
		s.report(err)
		return
	}
	s.show(ctx, s.displayCount)
}

func (s *shell) show(ctx context.Context, n int) {
	page, err := s.rec.Display(ctx, n)
	if err != nil {
		s.report(err)
		return
	}
	s.printf("---------\n%s:\n", page.Note)
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(page.Columns, "\t"))
	for _, row := range page.Rows() {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
	s.printf("---------\n")
}

// report 把领域错误转成用户可读的提示。
func (s *shell) report(err error) {
	if de := core.GetDomainError(err); de != nil {
		s.printf("Oops, %s\n", de.Message)
		return
	}
	s.printf("Oops, %v\n", err)
}
