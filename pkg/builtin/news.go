package builtin

import (
	"context"
	"slices"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolcall "github.com/mutablelogic/go-toolcall"
	newsapi "github.com/mutablelogic/go-toolcall/pkg/newsapi"
	plugin "github.com/mutablelogic/go-toolcall/pkg/plugin"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type news struct {
	opts []client.ClientOpt
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	NewsID = "news"
)

const (
	defaultArticles = 5
	maxArticles     = 20
)

var sortOrders = []string{"relevancy", "popularity", "publishedAt"}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// News returns the news plugin, which reads its key from the api_key
// setting like the weather plugin
func News(opts ...client.ClientOpt) plugin.Plugin {
	n := &news{opts: opts}
	return plugin.New(NewsID, plugin.Handlers{
		"news_headlines": n.headlines,
		"news_search":    n.search,
	})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (n *news) headlines(ctx context.Context, args map[string]any) (any, error) {
	limit, err := articleLimit(args)
	if err != nil {
		return nil, err
	}
	category := strings.ToLower(plugin.OptString(args, "category", ""))
	if category != "" && !slices.Contains(newsapi.Categories, category) {
		return nil, toolcall.ErrInvalidArguments.Withf("category must be one of %s", strings.Join(newsapi.Categories, ", "))
	}
	c, err := n.client(ctx)
	if err != nil {
		return nil, err
	}
	response, err := c.Headlines(ctx, &newsapi.HeadlinesRequest{
		Query:    plugin.OptString(args, "query", ""),
		Category: category,
		Country:  strings.ToLower(plugin.OptString(args, "country", "")),
		PageSize: limit,
	})
	if err != nil {
		return nil, err
	}
	return response.Summary(), nil
}

func (n *news) search(ctx context.Context, args map[string]any) (any, error) {
	query, err := plugin.String(args, "query")
	if err != nil {
		return nil, err
	}
	limit, err := articleLimit(args)
	if err != nil {
		return nil, err
	}
	sortBy := plugin.OptString(args, "sort_by", "publishedAt")
	if !slices.Contains(sortOrders, sortBy) {
		return nil, toolcall.ErrInvalidArguments.Withf("sort_by must be one of %s", strings.Join(sortOrders, ", "))
	}
	c, err := n.client(ctx)
	if err != nil {
		return nil, err
	}
	response, err := c.Search(ctx, &newsapi.SearchRequest{
		Query:    query,
		Language: plugin.OptString(args, "language", ""),
		SortBy:   sortBy,
		PageSize: limit,
	})
	if err != nil {
		return nil, err
	}
	return response.Summary(), nil
}

func (n *news) client(ctx context.Context) (*newsapi.Client, error) {
	key := plugin.SettingString(ctx, settingAPIKey)
	if key == "" {
		return nil, toolcall.ErrExecution.With("news API key is not configured")
	}
	return newsapi.New(key, n.opts...)
}

func articleLimit(args map[string]any) (int, error) {
	limit, err := plugin.Int(args, "limit", defaultArticles)
	if err != nil {
		return 0, err
	} else if limit < 1 || limit > maxArticles {
		return 0, toolcall.ErrInvalidArguments.Withf("limit must be between 1 and %d", maxArticles)
	}
	return limit, nil
}
