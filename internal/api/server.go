package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/kbteutonia/mitgliederbereich/docs"
	v1 "github.com/kbteutonia/mitgliederbereich/internal/api/handler/v1"
	"github.com/kbteutonia/mitgliederbereich/internal/api/middleware"
	"github.com/kbteutonia/mitgliederbereich/internal/config"
	"github.com/kbteutonia/mitgliederbereich/internal/repository"
	"github.com/kbteutonia/mitgliederbereich/internal/repository/dao"
	"github.com/kbteutonia/mitgliederbereich/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	// One hub serves every resource's change feed.
	stream := v1.NewStreamHandler()
	go stream.Run()

	memberHandler := s.initMemberHandler(db, stream)
	eventHandler := s.initEventHandler(db, stream)
	mealHandler := s.initMealHandler(db, stream)
	announcementHandler := s.initAnnouncementHandler(db, stream)
	expenseHandler := s.initExpenseHandler(db, stream)
	s.MountHandlers(memberHandler, eventHandler, mealHandler, announcementHandler, expenseHandler, stream)

	return s
}

func (s *Server) initMemberHandler(db *gorm.DB, stream *v1.StreamHandler) *v1.MemberHandler {
	memberDAO := dao.NewMemberDAO(db)
	repo := repository.NewMemberRepository(memberDAO)
	svc := service.NewMemberService(repo)
	handler := v1.NewMemberHandler(svc, stream)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB, stream *v1.StreamHandler) *v1.EventHandler {
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewEventRepository(eventDAO)
	svc := service.NewEventService(repo)
	handler := v1.NewEventHandler(svc, stream)

	return handler
}

func (s *Server) initMealHandler(db *gorm.DB, stream *v1.StreamHandler) *v1.MealHandler {
	mealDAO := dao.NewMealDAO(db)
	repo := repository.NewMealRepository(mealDAO)
	svc := service.NewMealService(repo)
	handler := v1.NewMealHandler(svc, stream)

	return handler
}

func (s *Server) initAnnouncementHandler(db *gorm.DB, stream *v1.StreamHandler) *v1.AnnouncementHandler {
	announcementDAO := dao.NewAnnouncementDAO(db)
	repo := repository.NewAnnouncementRepository(announcementDAO)
	svc := service.NewAnnouncementService(repo)
	handler := v1.NewAnnouncementHandler(svc, stream)

	return handler
}

func (s *Server) initExpenseHandler(db *gorm.DB, stream *v1.StreamHandler) *v1.ExpenseHandler {
	expenseDAO := dao.NewExpenseDAO(db)
	repo := repository.NewExpenseRepository(expenseDAO)
	svc := service.NewExpenseService(repo)
	handler := v1.NewExpenseHandler(svc, stream)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	memberHandler *v1.MemberHandler,
	eventHandler *v1.EventHandler,
	mealHandler *v1.MealHandler,
	announcementHandler *v1.AnnouncementHandler,
	expenseHandler *v1.ExpenseHandler,
	stream *v1.StreamHandler,
) {
	const basePath = "/api"

	members := s.Router.Group(basePath)
	{
		members.GET("/members", memberHandler.HandleListMembers)
		members.POST("/members", memberHandler.HandleCreateMember)
		members.POST("/members/login", memberHandler.HandleLoginLookup)
		members.GET("/members/:memberID", memberHandler.HandleGetMember)
		members.PATCH("/members/:memberID", memberHandler.HandleUpdateMember)
		members.DELETE("/members/:memberID", memberHandler.HandleDeleteMember)
		members.POST("/members/:memberID/password", memberHandler.HandleSetPassword)
	}

	events := s.Router.Group(basePath)
	{
		events.GET("/events", eventHandler.HandleListEvents)
		events.POST("/events", eventHandler.HandleCreateEvent)
		events.PATCH("/events/:eventID", eventHandler.HandleUpdateEvent)
		events.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		events.POST("/event-registrations", eventHandler.HandleUpsertRegistration)
	}

	meals := s.Router.Group(basePath)
	{
		meals.GET("/meals", mealHandler.HandleWeekMeals)
		meals.POST("/meals", mealHandler.HandleUpsertMeal)
		meals.POST("/meal-signups", mealHandler.HandleMealSignup)
	}

	announcements := s.Router.Group(basePath)
	{
		announcements.GET("/announcements", announcementHandler.HandleListAnnouncements)
		announcements.POST("/announcements", announcementHandler.HandleCreateAnnouncement)
	}

	expenses := s.Router.Group(basePath)
	{
		expenses.GET("/expenses", expenseHandler.HandleListExpenses)
		expenses.POST("/expenses", expenseHandler.HandleCreateExpense)
	}

	s.Router.GET(basePath+"/stream", stream.HandleWebSocket)
	s.Router.GET(basePath+"/health", v1.HandleHealthcheck)
	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Mitgliederbereich API"
	docs.SwaggerInfo.Description = "Members-area backend for the house: members, events, meal plan, announcements and expenses."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
