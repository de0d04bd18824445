package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/dkachan/shiftscout/internal/config"
	"github.com/dkachan/shiftscout/pkg/bookingcache"
	"github.com/dkachan/shiftscout/pkg/clients/scheduleclient"
	"github.com/dkachan/shiftscout/pkg/core/matcher"
	"github.com/dkachan/shiftscout/pkg/core/parser"
	"github.com/dkachan/shiftscout/pkg/core/stopwords"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg       *config.Config
	Schedule  *scheduleclient.Client
	StopWords *stopwords.Index
	Parser    *parser.Parser
	Matcher   *matcher.Matcher
	Bookings  *bookingcache.Cache
	Logger    *zap.Logger
	Ctx       context.Context
}
