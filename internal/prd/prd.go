package prd

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"qa-triage-assistant/pkg/htmltext"
	"qa-triage-assistant/pkg/llmprovider"
	pkgLog "qa-triage-assistant/pkg/log"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200

	featureMaxTokens  = 256
	planMaxTokens     = 512
	testCaseMaxTokens = 512
)

const featurePrompt = "Extract key features or testable flows from this PRD. " +
	"Format each feature as a brief title without any markdown formatting " +
	"(no asterisks or special characters). Focus on the main functionality:\n\n%s"

const planPrompt = "Generate a simple, brief test plan for this feature. " +
	"Don't use any formatting like markdown, asterisks, headers, or section titles. " +
	"Use plain text only:\n%s"

const testCasePrompt = "Write 1-2 simple test cases based on this plan. " +
	"Use plain text format without any markdown, asterisks, headers or formatting. " +
	"For each test case include:\n- Title\n- Steps (numbered list)\n- Expected result\n\n%s"

// ParseOutput is the full result of a PRD parse: one plan per feature and
// one test case batch per plan, index-aligned.
type ParseOutput struct {
	Features []string `json:"features"`
	Plans    []string `json:"plans"`
	Cases    []string `json:"cases"`
}

// UseCase turns a Confluence PRD page into features, test plans, and
// test cases.
type UseCase interface {
	ParsePRD(ctx context.Context, pageID string) (ParseOutput, error)
}

type pageFetcher interface {
	FetchPageContent(ctx context.Context, pageID string) (string, error)
}

type textGenerator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

type implUseCase struct {
	fetcher  pageFetcher
	llm      textGenerator
	splitter textsplitter.RecursiveCharacter
	l        pkgLog.Logger
}

func New(fetcher pageFetcher, llm *llmprovider.Manager, l pkgLog.Logger) UseCase {
	return &implUseCase{
		fetcher: fetcher,
		llm:     llm,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
		),
		l: l,
	}
}

func (uc *implUseCase) ParsePRD(ctx context.Context, pageID string) (ParseOutput, error) {
	if pageID == "" {
		return ParseOutput{}, fmt.Errorf("page id is required")
	}

	html, err := uc.fetcher.FetchPageContent(ctx, pageID)
	if err != nil {
		return ParseOutput{}, fmt.Errorf("failed to fetch PRD page %s: %w", pageID, err)
	}

	text, err := htmltext.Extract(html)
	if err != nil {
		return ParseOutput{}, fmt.Errorf("failed to extract PRD text: %w", err)
	}

	chunks, err := uc.splitter.SplitText(text)
	if err != nil {
		return ParseOutput{}, fmt.Errorf("failed to chunk PRD text: %w", err)
	}

	uc.l.Infof(ctx, "ParsePRD: page=%s text=%d chars chunks=%d", pageID, len(text), len(chunks))

	features, err := uc.extractFeatures(ctx, chunks)
	if err != nil {
		return ParseOutput{}, err
	}

	plans, err := uc.generatePlans(ctx, features)
	if err != nil {
		return ParseOutput{}, err
	}

	cases, err := uc.generateCases(ctx, plans)
	if err != nil {
		return ParseOutput{}, err
	}

	return ParseOutput{Features: features, Plans: plans, Cases: cases}, nil
}

// extractFeatures runs feature extraction per chunk. Each response line is
// one feature title.
func (uc *implUseCase) extractFeatures(ctx context.Context, chunks []string) ([]string, error) {
	var features []string

	for _, chunk := range chunks {
		resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
			Prompt:      fmt.Sprintf(featurePrompt, chunk),
			Temperature: 0,
			MaxTokens:   featureMaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to extract features: %w", err)
		}

		for _, line := range strings.Split(resp.Text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				features = append(features, line)
			}
		}
	}

	return features, nil
}

func (uc *implUseCase) generatePlans(ctx context.Context, features []string) ([]string, error) {
	plans := make([]string, 0, len(features))

	for _, feature := range features {
		resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
			Prompt:    fmt.Sprintf(planPrompt, feature),
			MaxTokens: planMaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to generate test plan: %w", err)
		}
		plans = append(plans, strings.TrimSpace(resp.Text))
	}

	return plans, nil
}

func (uc *implUseCase) generateCases(ctx context.Context, plans []string) ([]string, error) {
	cases := make([]string, 0, len(plans))

	for _, plan := range plans {
		resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
			Prompt:    fmt.Sprintf(testCasePrompt, plan),
			MaxTokens: testCaseMaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to generate test cases: %w", err)
		}
		cases = append(cases, strings.TrimSpace(resp.Text))
	}

	return cases, nil
}
