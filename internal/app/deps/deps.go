package deps

import (
	"context"
	"medremind/internal/config"
	dl "medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medicine"
	"medremind/internal/core/domain/notification"
	drl "medremind/internal/core/domain/rate_limiter"
	duow "medremind/internal/core/domain/unit_of_work"
	"medremind/internal/core/domain/user"
	dbmedicine "medremind/internal/db/medicine"
	uow "medremind/internal/db/unit_of_work"
	dbuser "medremind/internal/db/user"
	"medremind/internal/implementations/logging"
	ratelimiter "medremind/internal/implementations/rate_limiter"
	remindersender "medremind/internal/implementations/reminder_sender"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	SseServer *sse.Server

	Now      func() time.Time
	Location *time.Location

	UnitOfWork         duow.UnitOfWork
	UserRepository     user.UserRepository
	SessionRepository  user.SessionRepository
	MedicineRepository medicine.MedicineRepository
	IntakeRepository   medicine.IntakeRepository

	RateLimiter drl.RateLimiter

	ReminderSender notification.Sender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()
	deps.initLocation()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeSseServer := deps.initSseServer()

	deps.Now = func() time.Time { return time.Now().In(deps.Location) }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxUserRepository(deps.DB)
	deps.SessionRepository = dbuser.NewPgxSessionRepository(deps.DB)
	deps.MedicineRepository = dbmedicine.NewPgxMedicineRepository(deps.DB)
	deps.IntakeRepository = dbmedicine.NewPgxIntakeRepository(deps.DB)

	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)

	deps.initReminderSender()

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLocation() {
	location, err := time.LoadLocation(deps.Config.Timezone)
	if err != nil {
		panic(err)
	}
	deps.Location = location
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

func (deps *Deps) initReminderSender() {
	internalSender := remindersender.NewInternal(deps.SseServer)
	if deps.Config.IsTestMode {
		deps.ReminderSender = internalSender
		return
	}
	// Email and the in-app events stream both receive every reminder.
	deps.ReminderSender = remindersender.NewFanOut(
		remindersender.NewEmail(deps.AwsConfig, deps.Config.SenderEmail),
		internalSender,
	)
}
