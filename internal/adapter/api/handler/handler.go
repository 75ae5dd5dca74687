package handler

import (
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/infrastructure/policy"
	"github.com/CoreyPickett/UONMarketplace-sub000/internal/usecase"
)

var (
	threadHandler  *ThreadHandler
	listingHandler *ListingHandler
	saveHandler    *SaveHandler
	userHandler    *UserHandler
	adminHandler   *AdminHandler
)

func Setup(
	threadUseCase *usecase.ThreadUseCase,
	listingUseCase *usecase.ListingUseCase,
	saveUseCase *usecase.SaveUseCase,
	userUseCase *usecase.UserUseCase,
	adminUseCase *usecase.AdminUseCase,
	adminPolicy *policy.AdminPolicy,
) {
	threadHandler = NewThreadHandler(threadUseCase)
	listingHandler = NewListingHandler(listingUseCase)
	saveHandler = NewSaveHandler(saveUseCase)
	userHandler = NewUserHandler(userUseCase)
	adminHandler = NewAdminHandler(adminUseCase, adminPolicy)
}

func GetThreadHandler() *ThreadHandler {
	return threadHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetSaveHandler() *SaveHandler {
	return saveHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}
