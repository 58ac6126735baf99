package api

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	db "github.com/SureStake/SureStake-Backend/db"
	"github.com/SureStake/SureStake-Backend/models"
	"github.com/SureStake/SureStake-Backend/services"
	"github.com/SureStake/SureStake-Backend/services/ledger"
	"github.com/SureStake/SureStake-Backend/services/monitoring/logging"
	"github.com/SureStake/SureStake-Backend/services/security"
	user_service "github.com/SureStake/SureStake-Backend/services/user"
	"github.com/SureStake/SureStake-Backend/services/withdrawal"
	"github.com/SureStake/SureStake-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// / If there's a better place to access this
// / TODO, I feel the config should be the one accessible like this
var TokenController *utils.JWTToken

type Server struct {
	router      *gin.Engine
	store       *db.Store
	config      *utils.Config
	logger      *logging.Logger
	cache       *security.Cache
	redis       *services.RedisService
	ledger      *ledger.LedgerService
	withdrawals *withdrawal.WithdrawalService
	users       *user_service.UserService
}

func NewServer(envPath string) *Server {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	conn, err := sql.Open(c.DBDriver, utils.GetDBSource(c, c.DBName))
	if err != nil {
		panic(fmt.Sprintf("Could not load DB: %v", err))
	}

	m, err := migrate.New(
		"file://db/migrations",
		utils.GetDBSource(c, c.DBName),
	)
	if err != nil {
		log.Fatalf("Unable to instantiate the database schema migrator - %v", err)
	}

	if err := m.Up(); err != nil {
		if err != migrate.ErrNoChange {
			log.Fatalf("Unable to migrate up to the latest database schema - %v", err)
		}
	}

	l := logging.NewLogger(c)
	store := db.NewStore(conn)

	accountRepo := ledger.NewSQLAccountRepository(store)
	withdrawalRepo := withdrawal.NewSQLWithdrawalRepository(store)

	ledgerService := ledger.NewLedgerService(accountRepo, l)
	withdrawalService := withdrawal.NewWithdrawalService(withdrawalRepo, ledgerService, l)
	userService := user_service.NewUserService(accountRepo, ledgerService, l, c.ReferralBonusKobo)

	var redisService *services.RedisService
	if c.RedisHost != "" {
		redisService, err = services.NewRedisService(&services.RedisConfig{
			Host:     c.RedisHost,
			Port:     c.RedisPort,
			Password: c.RedisPassword,
		})
		if err != nil {
			// Block flags fall back to the in-process cache plus the
			// store-level checks that guard every mutation anyway.
			l.Error(fmt.Sprintf("redis unavailable, session revocation is node-local: %v", err))
		}
	}

	g := gin.Default()
	g.Use(CORSMiddleware())
	g.Use(l.LoggingMiddleWare())

	TokenController = utils.NewJWTToken(c)

	return &Server{
		router:      g,
		store:       store,
		config:      c,
		logger:      l,
		cache:       security.NewCache(),
		redis:       redisService,
		ledger:      ledgerService,
		withdrawals: withdrawalService,
		users:       userService,
	}
}

func (s *Server) Start() {

	dr := models.SuccessResponse{
		Status:  "success",
		Message: "Welcome to SureStake!",
		Version: utils.REVISION,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dr)
	})

	/// Register Object Routers Below
	Auth{}.router(s)
	Withdrawals{}.router(s)
	Admin{}.router(s)

	s.router.Run(fmt.Sprintf(":%v", s.config.ServerPort))
}
