package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glencullen/golfpoi/internal/audit"
	"github.com/glencullen/golfpoi/internal/config"
	"github.com/glencullen/golfpoi/internal/handlers"
	"github.com/glencullen/golfpoi/internal/imagestore"
	"github.com/glencullen/golfpoi/internal/middleware"
	"github.com/glencullen/golfpoi/internal/weather"
)

// RegisterRoutes wires every route with its auth strategy: bearer token for
// the JSON API, session cookie for the server-rendered pages. Public routes
// are the landing/signup/login pages plus user create/authenticate.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	images imagestore.Store,
	weatherSvc weather.Service,
) {

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	userHandler := handlers.NewUserHandler(db, cfg, auditDispatcher)
	categoryHandler := handlers.NewCategoryHandler(db, auditDispatcher)
	golfPOIHandler := handlers.NewGolfPOIHandler(db, images, auditDispatcher)
	imageHandler := handlers.NewImageHandler(images)
	weatherHandler := handlers.NewWeatherHandler(weatherSvc)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	accountsHandler := handlers.NewAccountsWebHandler(db, cfg, auditDispatcher)
	courseWebHandler := handlers.NewCourseWebHandler(db, images, weatherSvc, auditDispatcher)
	adminWebHandler := handlers.NewAdminWebHandler(db, auditDispatcher)

	// ------------------------------
	// Web (HTML, session cookie)
	// ------------------------------
	r.GET("/", accountsHandler.Index)
	r.GET("/signup", accountsHandler.ShowSignup)
	r.POST("/signup", accountsHandler.Signup)
	r.GET("/login", accountsHandler.ShowLogin)
	r.POST("/login", accountsHandler.Login)

	web := r.Group("/")
	web.Use(middleware.SessionMiddleware(cfg))
	{
		web.GET("/logout", accountsHandler.Logout)
		web.GET("/settings", accountsHandler.ShowSettings)
		web.POST("/settings", accountsHandler.UpdateSettings)

		web.GET("/report", courseWebHandler.Report)
		web.GET("/reportCategory/:categoryId", courseWebHandler.ReportCategory)
		web.GET("/newCourse", courseWebHandler.NewCourse)
		web.POST("/addCourse", courseWebHandler.AddCourse)
		web.GET("/course/:courseId", courseWebHandler.Course)
		web.POST("/courseUpdate/:courseId", courseWebHandler.CourseUpdate)
		web.GET("/deleteCourse/:courseId", courseWebHandler.DeleteCourse)

		web.GET("/addImage/:courseId", courseWebHandler.AddImage)
		web.POST("/uploadFile/:id", courseWebHandler.UploadFile)
		web.GET("/deleteimage/:id/:courseId", courseWebHandler.DeleteImage)

		web.GET("/category", courseWebHandler.ShowCategory)
		web.POST("/category", courseWebHandler.UpdateCategory)
		web.GET("/deleteCategory/:categoryId", courseWebHandler.DeleteCategory)

		web.GET("/manageUsers", adminWebHandler.ManageUsers)
		web.GET("/deleteUser/:id", adminWebHandler.DeleteUser)
		web.GET("/userUpdate/:id", adminWebHandler.DisplayUser)
		web.POST("/userUpdate/:id", adminWebHandler.UpdateUser)
	}

	// ------------------------------
	// API (JSON)
	// ------------------------------
	api := r.Group("/api")
	{
		api.POST("/users/create", userHandler.Create)
		api.POST("/users/authenticate", userHandler.Authenticate)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/golfPOIs", golfPOIHandler.Find)
			secured.GET("/golfPOIs/findByCategory/:categoryId", golfPOIHandler.FindByCategory)
			secured.GET("/golfPOIs/:id", golfPOIHandler.FindOne)
			secured.POST("/golfPOIs", golfPOIHandler.Create)
			secured.POST("/golfPOIs/update/:courseId/:userId", golfPOIHandler.Update)
			secured.POST("/golfPOIs/upload/:id", golfPOIHandler.UploadImage)
			secured.DELETE("/golfPOIs/deleteImage/:id/:courseId/:userId", golfPOIHandler.DeleteImage)
			secured.DELETE("/golfPOIs/:id", golfPOIHandler.DeleteOne)
			secured.DELETE("/golfPOIs", golfPOIHandler.DeleteAll)

			secured.GET("/users", userHandler.Find)
			secured.GET("/users/email/:email", userHandler.FindByEmail)
			secured.GET("/users/:id", userHandler.FindOne)
			secured.POST("/users/update/:id", userHandler.Update)
			secured.DELETE("/users/:id", userHandler.DeleteOne)
			secured.DELETE("/users", userHandler.DeleteAll)

			secured.GET("/locationCategories", categoryHandler.Find)
			secured.GET("/locationCategories/:id", categoryHandler.FindOne)
			secured.POST("/locationCategories", categoryHandler.Create)
			secured.DELETE("/locationCategories/:id", categoryHandler.DeleteOne)
			secured.DELETE("/locationCategories", categoryHandler.DeleteAll)

			secured.GET("/imageAPI/:idList", imageHandler.GetCourseImages)
			secured.GET("/weatherAPI/:latitude/:longitude", weatherHandler.GetWeather)

			secured.GET("/auditLogs", auditLogsHandler.List)
		}
	}
}
