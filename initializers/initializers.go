package initializers

import (
	"context"
	"docflow-backend/config"
	"docflow-backend/db"
	"docflow-backend/fiberlog"
	xlsexport "docflow-backend/lib/export/xls"
	"docflow-backend/lib/rbac"
	initchecker "docflow-backend/lib/utils/init-checker"
	workflowhandler "docflow-backend/lib/workflow"
	workflowdashboardhandler "docflow-backend/lib/workflow-dashboard"
	workflowhistoryhandler "docflow-backend/lib/workflow-history"
	workflownotify "docflow-backend/lib/workflow-notify"
	workflowreminder "docflow-backend/lib/workflow-reminder"
	workflowroleshandler "docflow-backend/lib/workflow-roles"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	InitHandlers()
	go initWorkers(ctx)
}

// InitHandlers builds the handler graph on top of db.DB; the order follows the dependencies.
func InitHandlers() {
	xlsexport.NewHandler()
	workflownotify.NewHandler(*config.Conf.Workflow.NotifyEnabled)
	workflowroleshandler.NewHandler()
	workflowhandler.NewHandler()
	workflowhistoryhandler.NewHandler()
	workflowdashboardhandler.NewHandler()
	rbac.NewHandler()
	initchecker.CheckInit(
		"db", db.DB,
		"workflowroleshandler", workflowroleshandler.Instance,
		"workflowhandler", workflowhandler.Instance,
		"workflowhistoryhandler", workflowhistoryhandler.Instance,
		"workflowdashboardhandler", workflowdashboardhandler.Instance,
		"rbac", rbac.Instance,
	)
}

func initWorkers(ctx context.Context) {
	// reminders about documents waiting too long for their assignee
	workflowreminder.StartWorker(ctx)
}
