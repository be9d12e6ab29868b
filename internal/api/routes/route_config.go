package routes

import (
	"Dishcovery-Backend/internal/api/handlers"
	"Dishcovery-Backend/internal/middleware"
	"Dishcovery-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RecipeHandler     handlers.RecipeHandler
	IngredientHandler handlers.IngredientHandler
	CommentHandler    handlers.CommentHandler
	FavoriteHandler   handlers.FavoriteHandler
	RatingHandler     handlers.RatingHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.App.Use(c.Middleware.IdentityMiddleware(c.JWTService))
	c.User()
	c.Recipe()
	c.Ingredients()
	c.Comment()
	c.Favorite()
	c.Rating()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) User() {
	user := c.App.Group("/user")
	{
		user.Post("/add", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/getAll", c.UserHandler.GetAllUsers)
		user.Get("/get/:id", c.UserHandler.GetUser)
		user.Put("/update/:id", c.UserHandler.UpdateUser)
		user.Delete("/delete/:id", c.UserHandler.DeleteUser)
	}
}

func (c *Config) Recipe() {
	recipe := c.App.Group("/recipe")
	{
		recipe.Post("/insertRecipe", c.RecipeHandler.InsertRecipe)
		recipe.Get("/getAllRecipes", c.RecipeHandler.GetAllRecipes)
		recipe.Get("/getRecipe/:id", c.RecipeHandler.GetRecipe)
		recipe.Get("/getRecipesByUserId/:userId", c.RecipeHandler.GetRecipesByUserID)
		recipe.Get("/search", c.RecipeHandler.SearchRecipes)
		recipe.Put("/updateRecipe/:id", c.RecipeHandler.UpdateRecipe)
		recipe.Delete("/deleteRecipe/:id", c.RecipeHandler.DeleteRecipe)
		recipe.Post("/uploadImage/:id", c.RecipeHandler.UploadImage)
	}

	admin := recipe.Group("/admin")
	{
		admin.Get("/pending", c.RecipeHandler.GetPendingRecipes)
		admin.Get("/approved", c.RecipeHandler.GetApprovedRecipes)
		admin.Put("/approve/:id", c.RecipeHandler.ApproveRecipe)
		admin.Delete("/reject/:id", c.RecipeHandler.RejectRecipe)
	}
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/ingredients")
	{
		ingredients.Get("", c.IngredientHandler.GetAllIngredients)
		ingredients.Get("/recipe/:recipeId", c.IngredientHandler.GetIngredientsByRecipe)
		ingredients.Get("/:id", c.IngredientHandler.GetIngredient)
		ingredients.Post("", c.IngredientHandler.AddIngredient)
		ingredients.Put("/:id", c.IngredientHandler.UpdateIngredient)
		ingredients.Delete("/:id", c.IngredientHandler.DeleteIngredient)
	}
}

func (c *Config) Comment() {
	comment := c.App.Group("/comment")
	{
		comment.Post("/insertComment", c.CommentHandler.InsertComment)
		comment.Get("/getAllComments", c.CommentHandler.GetAllComments)
		comment.Get("/getComment/:id", c.CommentHandler.GetComment)
		comment.Get("/getCommentsByRecipe/:recipeId", c.CommentHandler.GetCommentsByRecipe)
		comment.Put("/updateComment/:id?", c.CommentHandler.UpdateComment)
		comment.Delete("/deleteComment/:id?", c.CommentHandler.DeleteComment)
	}
}

func (c *Config) Favorite() {
	favorite := c.App.Group("/favorite")
	{
		favorite.Post("/insertFavorite", c.FavoriteHandler.InsertFavorite)
		favorite.Get("/getAllFavorites", c.FavoriteHandler.GetAllFavorites)
		favorite.Get("/getFavorite/:id", c.FavoriteHandler.GetFavorite)
		favorite.Get("/getUserFavorites/:userId", c.FavoriteHandler.GetUserFavorites)
		favorite.Put("/updateFavorite/:id?", c.FavoriteHandler.UpdateFavorite)
		favorite.Delete("/deleteFavorite/:id?", c.FavoriteHandler.DeleteFavorite)
	}
}

func (c *Config) Rating() {
	rating := c.App.Group("/rating")
	{
		rating.Post("/insertRating", c.RatingHandler.InsertRating)
		rating.Get("/getAllRatings", c.RatingHandler.GetAllRatings)
		rating.Get("/getRating/:id", c.RatingHandler.GetRating)
		rating.Get("/getRatingsByRecipe/:recipeId", c.RatingHandler.GetRatingsByRecipe)
		rating.Get("/getRecipeRatingSummary/:recipeId", c.RatingHandler.GetRecipeRatingSummary)
		rating.Put("/updateRating/:id?", c.RatingHandler.UpdateRating)
		rating.Delete("/deleteRating/:id?", c.RatingHandler.DeleteRating)
	}
}
