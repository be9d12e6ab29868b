package config

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/internal/api/handlers"
	"Dishcovery-Backend/internal/api/presenters"
	"Dishcovery-Backend/internal/api/routes"
	"Dishcovery-Backend/internal/middleware"
	"Dishcovery-Backend/internal/utils"
	"Dishcovery-Backend/internal/utils/mailing"
	"Dishcovery-Backend/internal/utils/storage"
	"Dishcovery-Backend/pkg/auth"
	"Dishcovery-Backend/pkg/comment"
	"Dishcovery-Backend/pkg/credential"
	"Dishcovery-Backend/pkg/favorite"
	"Dishcovery-Backend/pkg/ingredient"
	"Dishcovery-Backend/pkg/jwt"
	"Dishcovery-Backend/pkg/rating"
	"Dishcovery-Backend/pkg/recipe"
	"Dishcovery-Backend/pkg/user"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dependencies are the outward-facing collaborators of the app. Tests swap
// them for fakes.
type Dependencies struct {
	JWTService jwt.JWTService
	Hasher     credential.Hasher
	Policy     auth.Policy
	Mailer     mailing.Mailer
	S3         storage.AwsS3
	AppURL     string
}

func DefaultDependencies() Dependencies {
	return Dependencies{
		JWTService: jwt.NewJWTService(),
		Hasher:     credential.NewHasherFromConfig(),
		Policy:     auth.NewPolicyFromConfig(),
		Mailer:     mailing.NewMailer(mailing.LoadMailConfig()),
		S3:         storage.NewAwsS3(),
		AppURL:     utils.GetConfig("APP_URL"),
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return presenters.ErrorResponse(c, fe.Code, fe.Message, err)
	}
	return presenters.HandleError(c, domain.MessageFailedProcessRequest, err)
}

func NewFiber() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "Dishcovery",
		ErrorHandler: errorHandler,
	})
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	app := NewFiber()

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	// setting up logging and limiter
	logFile := utils.GetConfig("LOG_FILE")
	if err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm); err != nil {
		log.Errorf("error creating logs directory: %v", err)
		return nil, err
	}
	file, err := os.OpenFile(
		logFile,
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Errorf("error opening file: %v", err)
		return nil, err
	}
	app.Use(logger.New(logger.Config{
		Format:     "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	rateLimit, err := strconv.Atoi(utils.GetConfig("RATE_LIMIT_MAX"))
	if err != nil || rateLimit <= 0 {
		rateLimit = 20
	}
	app.Use(limiter.New(limiter.Config{
		Max:        rateLimit,
		Expiration: 1 * time.Second,
	}))

	RegisterRoutes(app, db, DefaultDependencies())
	return app, nil
}

// RegisterRoutes wires repositories, services and handlers onto app.
func RegisterRoutes(app *fiber.App, db *gorm.DB, deps Dependencies) {
	utils.InitValidator()
	validator := utils.Validate
	middlewares := middleware.NewMiddleware()

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	commentRepository := comment.NewCommentRepository(db)
	favoriteRepository := favorite.NewFavoriteRepository(db)
	ratingRepository := rating.NewRatingRepository(db)

	// Service
	guard := auth.NewGuard(userRepository)
	reconciler := ingredient.NewReconciler(ingredientRepository)
	userService := user.NewUserService(userRepository, guard, deps.Policy, deps.Hasher, deps.JWTService, deps.Mailer, deps.AppURL)
	recipeService := recipe.NewRecipeService(recipeRepository, reconciler, guard, deps.S3, deps.Mailer)
	ingredientService := ingredient.NewIngredientService(ingredientRepository, recipeRepository, guard)
	commentService := comment.NewCommentService(commentRepository, recipeRepository, guard)
	favoriteService := favorite.NewFavoriteService(favoriteRepository, recipeRepository, guard)
	ratingService := rating.NewRatingService(ratingRepository, recipeRepository, guard)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       handlers.NewUserHandler(userService, validator),
		RecipeHandler:     handlers.NewRecipeHandler(recipeService, validator),
		IngredientHandler: handlers.NewIngredientHandler(ingredientService, validator),
		CommentHandler:    handlers.NewCommentHandler(commentService, validator),
		FavoriteHandler:   handlers.NewFavoriteHandler(favoriteService, validator),
		RatingHandler:     handlers.NewRatingHandler(ratingService, validator),
		Middleware:        middlewares,
		JWTService:        deps.JWTService,
	}
	routesConfig.Setup()
}
